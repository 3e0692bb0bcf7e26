package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	gametypes "github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepository(t *testing.T) Repository {
	path := filepath.Join(t.TempDir(), "sweeper.db")
	repository, err := NewSQLiteRepository(context.Background(), path, "../../migrations/sqlite")
	require.NoError(t, err)
	t.Cleanup(func() {
		repository.Close(context.Background())
	})
	return repository
}

func wonReplay(t *testing.T, level gametypes.Difficulty, name string, millis int64, createdAt int64) *gametypes.Replay {
	config, err := gametypes.NewGridConfig(level)
	require.NoError(t, err)
	replay := gametypes.NewReplay(config, createdAt)
	replay.PlayerName = name
	replay.PlayTimeMillis = millis
	replay.AddStep(gametypes.TimeStep{
		ElapsedMillis:  0,
		Status:         gametypes.GameStatusRunning,
		RemainingMines: config.Mines,
		Changes: []gametypes.CellChange{
			gametypes.NewCellChange(gametypes.NewPosition(0, 0), gametypes.CellStatusRevealed, 0),
		},
	})
	replay.AddStep(gametypes.TimeStep{
		ElapsedMillis:  millis,
		Status:         gametypes.GameStatusWon,
		RemainingMines: -1,
		Changes: []gametypes.CellChange{
			gametypes.NewCellChange(gametypes.NewPosition(1, 0), gametypes.CellStatusRevealed, 2),
		},
	})
	return replay
}

func TestSQLiteSaveAndLoadReplay(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)
	want := wonReplay(t, gametypes.DifficultyNormal, "ana", 4200, 1700000000000)

	gameID, err := repository.SaveReplay(ctx, want)
	require.NoError(t, err)
	require.NotEmpty(t, gameID)

	got, err := repository.LoadReplay(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, want.Config, got.Config)
	assert.Equal(t, "ana", got.PlayerName)
	assert.Equal(t, int64(4200), got.PlayTimeMillis)
	assert.Equal(t, int64(1700000000000), got.CreatedAtMillis)
	require.Len(t, got.Steps, 2)
	for i := range want.Steps {
		assert.True(t, want.Steps[i].Equal(got.Steps[i]))
	}

	game, err := repository.LoadGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, gameID, game.ID)
	assert.Equal(t, gametypes.DifficultyNormal, game.Level)

	steps, err := repository.LoadSteps(ctx, gameID)
	require.NoError(t, err)
	assert.NotEmpty(t, steps)
}

func TestSQLiteNotFound(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	_, err := repository.LoadReplay(ctx, "missing")
	assert.True(t, IsNotFound(err))
	_, err = repository.LoadGame(ctx, "missing")
	assert.True(t, IsNotFound(err))
	_, err = repository.LoadSteps(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestSQLiteSaveReplayValidation(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	custom := wonReplay(t, gametypes.DifficultyEasy, "ana", 100, 0)
	custom.Config = gametypes.NewCustomGridConfig(5, 5, 5)
	_, err := repository.SaveReplay(ctx, custom)
	assert.True(t, IsCustomDifficulty(err))

	unnamed := wonReplay(t, gametypes.DifficultyEasy, "  ", 100, 0)
	_, err = repository.SaveReplay(ctx, unnamed)
	assert.True(t, IsMissingPlayerName(err))

	lost := wonReplay(t, gametypes.DifficultyEasy, "ana", 100, 0)
	lost.Steps[1].Status = gametypes.GameStatusLost
	_, err = repository.SaveReplay(ctx, lost)
	assert.Error(t, err)

	_, err = repository.SaveReplay(ctx, nil)
	assert.Error(t, err)

	_, err = repository.IsHighscore(ctx, gametypes.DifficultyCustom, 100)
	assert.True(t, IsCustomDifficulty(err))
}

func TestSQLiteHighscoreTable(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	isHighscore, err := repository.IsHighscore(ctx, gametypes.DifficultyEasy, 1_000_000)
	require.NoError(t, err)
	assert.True(t, isHighscore, "an empty table accepts any time")

	for i := 1; i <= 10; i++ {
		_, err := repository.SaveReplay(ctx, wonReplay(t, gametypes.DifficultyEasy, fmt.Sprintf("player-%d", i), int64(i*1000), int64(i)))
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		level  gametypes.Difficulty
		millis int64
		want   bool
	}{
		{name: "faster than slowest", level: gametypes.DifficultyEasy, millis: 9999, want: true},
		{name: "equal to slowest", level: gametypes.DifficultyEasy, millis: 10000, want: false},
		{name: "slower than slowest", level: gametypes.DifficultyEasy, millis: 20000, want: false},
		{name: "other level", level: gametypes.DifficultyHard, millis: 20000, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repository.IsHighscore(ctx, tt.level, tt.millis)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = repository.SaveReplay(ctx, wonReplay(t, gametypes.DifficultyEasy, "fast", 500, 11))
	require.NoError(t, err)

	games, err := repository.ListGames(ctx, gametypes.DifficultyEasy)
	require.NoError(t, err)
	require.Len(t, games, 10)
	assert.Equal(t, "fast", games[0].PlayerName)
	assert.Equal(t, int64(9000), games[9].PlayTimeMillis)
	for _, game := range games {
		assert.NotEqual(t, "player-10", game.PlayerName)
	}

	sqliteRepository := repository.(*SQLiteRepository)
	var players int
	require.NoError(t, sqliteRepository.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players;`).Scan(&players))
	assert.Equal(t, 10, players, "players without games are removed")
}

func TestSQLitePlayerNameIsShared(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	_, err := repository.SaveReplay(ctx, wonReplay(t, gametypes.DifficultyHard, "ana", 3000, 1))
	require.NoError(t, err)
	_, err = repository.SaveReplay(ctx, wonReplay(t, gametypes.DifficultyHard, "ana", 2000, 2))
	require.NoError(t, err)

	games, err := repository.ListGames(ctx, gametypes.DifficultyHard)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, int64(2000), games[0].PlayTimeMillis)
	assert.Equal(t, "ana", games[1].PlayerName)
}

func TestNewFromURLUnknownScheme(t *testing.T) {
	_, err := NewFromURL(context.Background(), "mysql://localhost/sweeper", "../../migrations")
	assert.Error(t, err)
}

func TestNewFromURLSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweeper.db")
	repository, err := NewFromURL(context.Background(), "sqlite://"+path, "../../migrations")
	require.NoError(t, err)
	defer repository.Close(context.Background())

	games, err := repository.ListGames(context.Background(), gametypes.DifficultyEasy)
	require.NoError(t, err)
	assert.Empty(t, games)
}
