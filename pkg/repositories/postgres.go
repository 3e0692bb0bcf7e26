package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cbodonnell/sweeper/pkg/game/constants"
	gametypes "github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/replay"
	"github.com/cbodonnell/sweeper/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository stores games in Postgres over a single connection.
// The connection is not safe for concurrent use, so every call holds lock.
type PostgresRepository struct {
	conn *pgx.Conn
	lock sync.Mutex
}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := applyMigrations(migrations, func(migration string) error {
		_, err := conn.Exec(ctx, migration)
		return err
	}); err != nil {
		conn.Close(ctx)
		return nil, err
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) IsHighscore(ctx context.Context, level gametypes.Difficulty, millis int64) (bool, error) {
	if level == gametypes.DifficultyCustom {
		return false, &ErrCustomDifficulty{}
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT COUNT(*), COALESCE(MAX(play_time), 0) FROM games WHERE level = $1;
	`
	var count int
	var slowest int64
	if err := r.conn.QueryRow(ctx, q, int(level)).Scan(&count, &slowest); err != nil {
		return false, fmt.Errorf("failed to query highscores: %v", err)
	}

	return isHighscore(count, slowest, millis), nil
}

func (r *PostgresRepository) SaveReplay(ctx context.Context, replayToSave *gametypes.Replay) (string, error) {
	if err := validateReplay(replayToSave); err != nil {
		return "", err
	}
	steps, err := replay.SerializeSteps(replayToSave.Steps)
	if err != nil {
		return "", fmt.Errorf("failed to serialize steps: %v", err)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := `
	INSERT INTO players (name) VALUES ($1)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING player_id;
	`
	var playerID int32
	if err := tx.QueryRow(ctx, q, strings.TrimSpace(replayToSave.PlayerName)).Scan(&playerID); err != nil {
		return "", fmt.Errorf("failed to insert player: %v", err)
	}

	gameID := uuid.NewString()
	config := replayToSave.Config
	q = `
	INSERT INTO games (game_id, player_id, level, width, height, mines, play_time, created_at, steps)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, q, gameID, playerID, int(config.Difficulty), config.Width, config.Height, config.Mines,
		replayToSave.PlayTimeMillis, replayToSave.CreatedAtMillis, steps)
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %v", err)
	}

	q = `
	DELETE FROM games WHERE level = $1 AND game_id NOT IN (
		SELECT game_id FROM games WHERE level = $1 ORDER BY play_time, created_at LIMIT $2
	);
	`
	if _, err := tx.Exec(ctx, q, int(config.Difficulty), constants.MaxHighscores); err != nil {
		return "", fmt.Errorf("failed to delete excess games: %v", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM players WHERE player_id NOT IN (SELECT player_id FROM games);`); err != nil {
		return "", fmt.Errorf("failed to delete players without games: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %v", err)
	}

	return gameID, nil
}

func (r *PostgresRepository) LoadReplay(ctx context.Context, gameID string) (*gametypes.Replay, error) {
	game, err := r.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	b, err := r.LoadSteps(ctx, gameID)
	if err != nil {
		return nil, err
	}
	steps, err := replay.DeserializeSteps(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize steps of game %s: %v", gameID, err)
	}

	return &gametypes.Replay{
		Config:          game.Config(),
		PlayerName:      game.PlayerName,
		PlayTimeMillis:  game.PlayTimeMillis,
		CreatedAtMillis: game.CreatedAtMillis,
		Steps:           steps,
	}, nil
}

func (r *PostgresRepository) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT g.game_id, p.name, g.level, g.width, g.height, g.mines, g.play_time, g.created_at
	FROM games g JOIN players p ON p.player_id = g.player_id
	WHERE g.game_id = $1;
	`
	game := &models.Game{}
	var level int
	err := r.conn.QueryRow(ctx, q, gameID).Scan(&game.ID, &game.PlayerName, &level, &game.Width, &game.Height,
		&game.Mines, &game.PlayTimeMillis, &game.CreatedAtMillis)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}
	game.Level = gametypes.DifficultyFromOrdinal(level)

	return game, nil
}

func (r *PostgresRepository) LoadSteps(ctx context.Context, gameID string) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var steps []byte
	if err := r.conn.QueryRow(ctx, `SELECT steps FROM games WHERE game_id = $1;`, gameID).Scan(&steps); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan steps: %v", err)
	}
	return steps, nil
}

func (r *PostgresRepository) ListGames(ctx context.Context, level gametypes.Difficulty) ([]*models.Game, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT g.game_id, p.name, g.level, g.width, g.height, g.mines, g.play_time, g.created_at
	FROM games g JOIN players p ON p.player_id = g.player_id
	WHERE g.level = $1
	ORDER BY g.play_time, g.created_at;
	`
	rows, err := r.conn.Query(ctx, q, int(level))
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %v", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		game := &models.Game{}
		var gameLevel int
		if err := rows.Scan(&game.ID, &game.PlayerName, &gameLevel, &game.Width, &game.Height,
			&game.Mines, &game.PlayTimeMillis, &game.CreatedAtMillis); err != nil {
			return nil, fmt.Errorf("failed to scan game: %v", err)
		}
		game.Level = gametypes.DifficultyFromOrdinal(gameLevel)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %v", err)
	}

	return games, nil
}
