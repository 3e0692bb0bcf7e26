package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbodonnell/sweeper/pkg/game/constants"
	gametypes "github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/replay"
	"github.com/cbodonnell/sweeper/pkg/repositories/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)

	if err := applyMigrations(migrations, func(migration string) error {
		_, err := db.ExecContext(ctx, migration)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

// applyMigrations runs the .sql files of a directory in name order
func applyMigrations(migrations string, exec func(migration string) error) error {
	dir, err := os.ReadDir(migrations)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(dir, func(i, j int) bool { return dir[i].Name() < dir[j].Name() })

	for _, entry := range dir {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if err := exec(string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) IsHighscore(ctx context.Context, level gametypes.Difficulty, millis int64) (bool, error) {
	if level == gametypes.DifficultyCustom {
		return false, &ErrCustomDifficulty{}
	}

	q := `
	SELECT COUNT(*), COALESCE(MAX(play_time), 0) FROM games WHERE level = ?;
	`
	var count int
	var slowest int64
	if err := r.db.QueryRowContext(ctx, q, int(level)).Scan(&count, &slowest); err != nil {
		return false, fmt.Errorf("failed to query highscores: %v", err)
	}

	return isHighscore(count, slowest, millis), nil
}

func (r *SQLiteRepository) SaveReplay(ctx context.Context, replayToSave *gametypes.Replay) (string, error) {
	if err := validateReplay(replayToSave); err != nil {
		return "", err
	}
	steps, err := replay.SerializeSteps(replayToSave.Steps)
	if err != nil {
		return "", fmt.Errorf("failed to serialize steps: %v", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	name := strings.TrimSpace(replayToSave.PlayerName)
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO players (name) VALUES (?);`, name); err != nil {
		return "", fmt.Errorf("failed to insert player: %v", err)
	}
	var playerID int64
	if err := tx.QueryRowContext(ctx, `SELECT player_id FROM players WHERE name = ?;`, name).Scan(&playerID); err != nil {
		return "", fmt.Errorf("failed to select player: %v", err)
	}

	gameID := uuid.NewString()
	config := replayToSave.Config
	q := `
	INSERT INTO games (game_id, player_id, level, width, height, mines, play_time, created_at, steps)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, q, gameID, playerID, int(config.Difficulty), config.Width, config.Height, config.Mines,
		replayToSave.PlayTimeMillis, replayToSave.CreatedAtMillis, steps)
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %v", err)
	}

	q = `
	DELETE FROM games WHERE level = ? AND game_id NOT IN (
		SELECT game_id FROM games WHERE level = ? ORDER BY play_time, created_at LIMIT ?
	);
	`
	if _, err := tx.ExecContext(ctx, q, int(config.Difficulty), int(config.Difficulty), constants.MaxHighscores); err != nil {
		return "", fmt.Errorf("failed to delete excess games: %v", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE player_id NOT IN (SELECT player_id FROM games);`); err != nil {
		return "", fmt.Errorf("failed to delete players without games: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %v", err)
	}

	return gameID, nil
}

func (r *SQLiteRepository) LoadReplay(ctx context.Context, gameID string) (*gametypes.Replay, error) {
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

func (r *SQLiteRepository) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	q := `
	SELECT g.game_id, p.name, g.level, g.width, g.height, g.mines, g.play_time, g.created_at
	FROM games g JOIN players p ON p.player_id = g.player_id
	WHERE g.game_id = ?;
	`
	game := &models.Game{}
	var level int
	err := r.db.QueryRowContext(ctx, q, gameID).Scan(&game.ID, &game.PlayerName, &level, &game.Width, &game.Height,
		&game.Mines, &game.PlayTimeMillis, &game.CreatedAtMillis)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}
	game.Level = gametypes.DifficultyFromOrdinal(level)

	return game, nil
}

func (r *SQLiteRepository) LoadSteps(ctx context.Context, gameID string) ([]byte, error) {
	var steps []byte
	if err := r.db.QueryRowContext(ctx, `SELECT steps FROM games WHERE game_id = ?;`, gameID).Scan(&steps); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan steps: %v", err)
	}
	return steps, nil
}

func (r *SQLiteRepository) ListGames(ctx context.Context, level gametypes.Difficulty) ([]*models.Game, error) {
	q := `
	SELECT g.game_id, p.name, g.level, g.width, g.height, g.mines, g.play_time, g.created_at
	FROM games g JOIN players p ON p.player_id = g.player_id
	WHERE g.level = ?
	ORDER BY g.play_time, g.created_at;
	`
	rows, err := r.db.QueryContext(ctx, q, int(level))
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
