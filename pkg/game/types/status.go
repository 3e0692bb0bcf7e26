package types

import "fmt"

// CellStatus is the visible state of a single cell.
// The ordinals are persisted in stored replays: never reorder or remove
// values, only append.
type CellStatus uint8

const (
	CellStatusHidden CellStatus = iota
	CellStatusRevealed
	CellStatusMarked
	CellStatusQueried
	CellStatusExplodedMine
)

// Valid returns true if the status is a known ordinal
func (s CellStatus) Valid() bool {
	return s <= CellStatusExplodedMine
}

func (s CellStatus) String() string {
	switch s {
	case CellStatusHidden:
		return "hidden"
	case CellStatusRevealed:
		return "revealed"
	case CellStatusMarked:
		return "marked"
	case CellStatusQueried:
		return "queried"
	case CellStatusExplodedMine:
		return "exploded"
	default:
		return fmt.Sprintf("CellStatus(%d)", s)
	}
}

// GameStatus is the status of a play session.
// Same persistence rule as CellStatus.
type GameStatus uint8

const (
	GameStatusReady GameStatus = iota
	GameStatusRunning
	GameStatusWon
	GameStatusLost
)

// Valid returns true if the status is a known ordinal
func (s GameStatus) Valid() bool {
	return s <= GameStatusLost
}

// IsTerminal returns true for Won and Lost
func (s GameStatus) IsTerminal() bool {
	return s == GameStatusWon || s == GameStatusLost
}

func (s GameStatus) String() string {
	switch s {
	case GameStatusReady:
		return "ready"
	case GameStatusRunning:
		return "running"
	case GameStatusWon:
		return "won"
	case GameStatusLost:
		return "lost"
	default:
		return fmt.Sprintf("GameStatus(%d)", s)
	}
}
