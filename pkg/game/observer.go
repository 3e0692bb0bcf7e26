package game

import (
	"context"

	"github.com/cbodonnell/sweeper/pkg/game/types"
)

// Observer receives session events
type Observer interface {
	OnGridRebuilt(config types.GridConfig)
	OnTimeUpdate(millis int64)
	OnRemainingMinesChanged(remaining int)
	OnWon(millis int64, isHighscore bool)
	OnLost(millis int64)
}

// HighscoreChecker decides whether a won game enters the highscore table
type HighscoreChecker interface {
	IsHighscore(ctx context.Context, level types.Difficulty, millis int64) (bool, error)
}
