package types

// CellChange records one cell taking a new status
type CellChange struct {
	Position      Position   `json:"position"`
	Status        CellStatus `json:"status"`
	AdjacentMines int        `json:"adjacentMines"`
}

// NewCellChange returns a change of the cell at p
func NewCellChange(p Position, status CellStatus, adjacentMines int) CellChange {
	return CellChange{
		Position:      p,
		Status:        status,
		AdjacentMines: adjacentMines,
	}
}

// TimeStep holds every change caused by one accepted command
type TimeStep struct {
	// ElapsedMillis is the session clock value when the step was finalized
	ElapsedMillis int64 `json:"elapsedMillis"`
	// Status is the session status after the command
	Status GameStatus `json:"status"`
	// RemainingMines is mines minus marks, and goes negative on over-marking
	RemainingMines int `json:"remainingMines"`
	// Changes are the cell changes in the order the engine reported them
	Changes []CellChange `json:"changes"`
}

// Copy returns a copy that shares no memory with the step
func (s TimeStep) Copy() TimeStep {
	changes := make([]CellChange, len(s.Changes))
	copy(changes, s.Changes)
	s.Changes = changes
	return s
}

// Equal returns true if both steps hold the same values and changes
func (s TimeStep) Equal(other TimeStep) bool {
	if s.ElapsedMillis != other.ElapsedMillis ||
		s.Status != other.Status ||
		s.RemainingMines != other.RemainingMines ||
		len(s.Changes) != len(other.Changes) {
		return false
	}
	for i := range s.Changes {
		if s.Changes[i] != other.Changes[i] {
			return false
		}
	}
	return true
}
