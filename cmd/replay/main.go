package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/sweeper/pkg/config"
	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/replay"
	"github.com/cbodonnell/sweeper/pkg/repositories"
)

// replayLog logs playback as it happens
type replayLog struct {
	player *replay.Player
	ended  chan struct{}
}

func (l *replayLog) OnGridRebuilt(config types.GridConfig) {
	log.Info("Grid %s", config)
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			if err := l.player.RegisterCellSink(&cellLog{player: l.player, position: types.NewPosition(x, y)}); err != nil {
				log.Error("Failed to register cell: %v", err)
			}
		}
	}
}

func (l *replayLog) OnTimeUpdate(millis int64) {
	log.Info("Time %ds", millis/1000)
}

func (l *replayLog) OnRemainingMinesChanged(remaining int) {
	log.Info("Remaining mines %d", remaining)
}

func (l *replayLog) OnReplayEnded() {
	close(l.ended)
}

type cellLog struct {
	player   *replay.Player
	position types.Position
}

func (c *cellLog) Position() types.Position {
	return c.position
}

func (c *cellLog) UpdateCell(status types.CellStatus, adjacentMines int) {
	log.Info("%6dms cell %s %s (%d)", c.player.Clock().Milliseconds(), c.position, status, adjacentMines)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	gameID := flag.String("game-id", "", "ID of the stored game to replay")
	level := flag.String("level", "easy", "Level to list stored games of when no game ID is given")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.NewFromURL(ctx, cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	if *gameID == "" {
		if err := listGames(ctx, repository, *level); err != nil {
			log.Error("Failed to list games: %v", err)
		}
		return
	}

	player := replay.NewPlayer(replay.NewPlayerOptions{TimerPeriod: cfg.TimerPeriod})
	observer := &replayLog{player: player, ended: make(chan struct{})}
	player.AddObserver(observer)
	if err := player.LoadByID(ctx, repository, *gameID); err != nil {
		log.Error("Failed to load replay: %v", err)
		return
	}
	loaded := player.Replay()
	log.Info("Playing %s by %s, %dms in %d steps", *gameID, loaded.PlayerName, loaded.PlayTimeMillis, len(loaded.Steps))

	player.Play()
	if player.IsStopped() {
		log.Info("Replay has no steps")
		return
	}
	for {
		select {
		case <-ctx.Done():
			player.Stop()
			return
		case <-observer.ended:
			log.Info("Replay ended")
			return
		case <-player.Clock().C():
			player.Clock().Tick()
		}
	}
}

func listGames(ctx context.Context, repository repositories.Repository, level string) error {
	difficulty, err := types.ParseDifficulty(level)
	if err != nil {
		return err
	}
	games, err := repository.ListGames(ctx, difficulty)
	if err != nil {
		return err
	}
	for i, game := range games {
		log.Info("%2d. %s %-16s %dms", i+1, game.ID, game.PlayerName, game.PlayTimeMillis)
	}
	return nil
}
