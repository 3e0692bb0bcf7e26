package types

import "fmt"

// UnsetPosition marks a position that has not been assigned
var UnsetPosition = Position{X: -1, Y: -1}

// Position is a cell coordinate on the grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPosition returns the position (x, y)
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// IsUnset returns true if the position is the unset sentinel
func (p Position) IsUnset() bool {
	return p == UnsetPosition
}

// Within returns true if the position lies on a grid of the given size
func (p Position) Within(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
