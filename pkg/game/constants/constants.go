package constants

import "time"

const (
	// TimerPeriod is the tick resolution of the session and replay clocks
	TimerPeriod time.Duration = 50 * time.Millisecond
	// MinTimerPeriod is the smallest period a clock accepts
	MinTimerPeriod time.Duration = 10 * time.Millisecond

	// MaxHighscores is the number of stored games kept per difficulty level
	MaxHighscores int = 10
	// HighscoreCheckTimeout bounds the highscore lookup after a won game
	HighscoreCheckTimeout time.Duration = 2 * time.Second

	// EasyWidth is the horizontal size of an easy grid
	EasyWidth int = 6
	// EasyHeight is the vertical size of an easy grid
	EasyHeight int = 8
	// EasyMines is the mine count of an easy grid
	EasyMines int = 6

	// NormalWidth is the horizontal size of a normal grid
	NormalWidth int = 8
	// NormalHeight is the vertical size of a normal grid
	NormalHeight int = 12
	// NormalMines is the mine count of a normal grid
	NormalMines int = 15

	// HardWidth is the horizontal size of a hard grid
	HardWidth int = 10
	// HardHeight is the vertical size of a hard grid
	HardHeight int = 18
	// HardMines is the mine count of a hard grid
	HardMines int = 37

	// MaxGridWidth is the widest grid a session accepts
	MaxGridWidth int = 32
	// MaxGridHeight is the tallest grid a session accepts
	MaxGridHeight int = 32

	// PlayerNameMaxLength is the longest player name accepted for a stored game
	PlayerNameMaxLength int = 16
)
