package repositories

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cbodonnell/sweeper/pkg/game/constants"
	gametypes "github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	// IsHighscore returns true if a game won in millis enters the table of the level
	IsHighscore(ctx context.Context, level gametypes.Difficulty, millis int64) (bool, error)
	// SaveReplay stores a won game and trims the table of its level
	SaveReplay(ctx context.Context, replay *gametypes.Replay) (string, error)
	// LoadReplay loads a stored game including its steps
	LoadReplay(ctx context.Context, gameID string) (*gametypes.Replay, error)
	// LoadGame loads the metadata of a stored game
	LoadGame(ctx context.Context, gameID string) (*models.Game, error)
	// LoadSteps loads the serialized steps of a stored game
	LoadSteps(ctx context.Context, gameID string) ([]byte, error)
	// ListGames lists the stored games of a level, fastest first
	ListGames(ctx context.Context, level gametypes.Difficulty) ([]*models.Game, error)
}

// NewFromURL creates the repository for a connection string.
// sqlite://<file> opens a SQLite database and applies the migrations in
// <migrationsDir>/sqlite, postgres:// and postgresql:// connect to Postgres
// and apply the ones in <migrationsDir>/postgres.
func NewFromURL(ctx context.Context, connStr string, migrationsDir string) (Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		repository, err := NewSQLiteRepository(ctx, path, filepath.Join(migrationsDir, "sqlite"))
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, u.String(), filepath.Join(migrationsDir, "postgres"))
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}

// validateReplay checks that a replay can enter the highscore table
func validateReplay(replay *gametypes.Replay) error {
	if replay == nil {
		return fmt.Errorf("replay is nil")
	}
	if replay.Config.Difficulty == gametypes.DifficultyCustom {
		return &ErrCustomDifficulty{}
	}
	name := strings.TrimSpace(replay.PlayerName)
	if name == "" {
		return &ErrMissingPlayerName{}
	}
	if len(name) > constants.PlayerNameMaxLength {
		return fmt.Errorf("player name exceeds %d characters", constants.PlayerNameMaxLength)
	}
	if replay.FinalStatus() != gametypes.GameStatusWon {
		return fmt.Errorf("only won games can be stored, game is %s", replay.FinalStatus())
	}
	return nil
}

func isHighscore(count int, slowest int64, millis int64) bool {
	return count < constants.MaxHighscores || millis < slowest
}
