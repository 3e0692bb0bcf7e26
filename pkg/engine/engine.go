package engine

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/sweeper/pkg/game/types"
)

// Listener is notified of every state change of an engine.
// Callbacks run synchronously inside the command that caused them.
type Listener interface {
	OnStatusChanged(status types.GameStatus)
	OnRemainingMinesChanged(remaining int)
	OnCellChanged(p types.Position, status types.CellStatus, adjacentMines int)
}

// CellSink receives the updates of the single cell it is positioned at
type CellSink interface {
	Position() types.Position
	UpdateCell(status types.CellStatus, adjacentMines int)
}

// Engine owns the grid rules: mine layout, reveal, marking and the
// win/loss conditions.
type Engine interface {
	// CreateGrid discards the current grid and creates a new one
	CreateGrid(width, height, mines int) error
	// RevealCell reveals the cell at p and returns its adjacent mine count.
	// Cells uncovered by the flood are reported through OnCellChanged.
	// An ignored reveal returns 0.
	RevealCell(p types.Position) (int, error)
	// CycleMark advances the mark of the cell at p
	CycleMark(p types.Position) error
	// Status returns the current game status
	Status() types.GameStatus
	// RemainingMines returns mines minus marked cells
	RemainingMines() int
	// SetCellSink registers a sink for the cell at its position
	SetCellSink(sink CellSink) error
	AddListener(l Listener)
	RemoveListener(l Listener)
}

// OutOfBoundsError is returned for positions outside the grid
type OutOfBoundsError struct {
	Position types.Position
	Width    int
	Height   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position %s is outside the %dx%d grid", e.Position, e.Width, e.Height)
}

// IsOutOfBounds returns true if the error is, or wraps, an OutOfBoundsError
func IsOutOfBounds(err error) bool {
	var target *OutOfBoundsError
	return errors.As(err, &target)
}
