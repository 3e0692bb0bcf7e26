package models

import gametypes "github.com/cbodonnell/sweeper/pkg/game/types"

// Game is a stored game without its steps
type Game struct {
	ID              string               `json:"id"`
	PlayerName      string               `json:"player_name"`
	Level           gametypes.Difficulty `json:"level"`
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	Mines           int                  `json:"mines"`
	PlayTimeMillis  int64                `json:"play_time"`
	CreatedAtMillis int64                `json:"created_at"`
}

// Config returns the grid the game was played on
func (g *Game) Config() gametypes.GridConfig {
	return gametypes.GridConfig{
		Difficulty: g.Level,
		Width:      g.Width,
		Height:     g.Height,
		Mines:      g.Mines,
	}
}
