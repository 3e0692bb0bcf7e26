package types

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/sweeper/pkg/game/constants"
)

// Difficulty is the level a grid was configured with.
// The ordinal is stored alongside games, so values may only be appended.
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyCustom
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	case DifficultyCustom:
		return "custom"
	default:
		return fmt.Sprintf("Difficulty(%d)", d)
	}
}

// MarshalText encodes the difficulty by name
func (d Difficulty) MarshalText() ([]byte, error) {
	if d > DifficultyCustom {
		return nil, fmt.Errorf("unknown difficulty: %d", d)
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDifficulty parses a difficulty name (easy, normal, hard, custom)
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	case "custom":
		return DifficultyCustom, nil
	default:
		return DifficultyCustom, fmt.Errorf("unknown difficulty: %s", s)
	}
}

// DifficultyFromOrdinal maps a stored ordinal back to a difficulty.
// Unknown ordinals fall back to custom.
func DifficultyFromOrdinal(i int) Difficulty {
	if i < 0 || i > int(DifficultyCustom) {
		return DifficultyCustom
	}
	return Difficulty(i)
}

// GridConfig describes the size and mine count of a grid
type GridConfig struct {
	Difficulty Difficulty `json:"difficulty"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Mines      int        `json:"mines"`
}

// NewGridConfig returns the configuration of a standard level.
// Custom has no predefined size; use NewCustomGridConfig for it.
func NewGridConfig(level Difficulty) (GridConfig, error) {
	switch level {
	case DifficultyEasy:
		return GridConfig{Difficulty: level, Width: constants.EasyWidth, Height: constants.EasyHeight, Mines: constants.EasyMines}, nil
	case DifficultyNormal:
		return GridConfig{Difficulty: level, Width: constants.NormalWidth, Height: constants.NormalHeight, Mines: constants.NormalMines}, nil
	case DifficultyHard:
		return GridConfig{Difficulty: level, Width: constants.HardWidth, Height: constants.HardHeight, Mines: constants.HardMines}, nil
	default:
		return GridConfig{}, fmt.Errorf("no predefined grid for difficulty %s", level)
	}
}

// NewCustomGridConfig returns a free-form configuration
func NewCustomGridConfig(width, height, mines int) GridConfig {
	return GridConfig{
		Difficulty: DifficultyCustom,
		Width:      width,
		Height:     height,
		Mines:      mines,
	}
}

// Validate checks that the grid has cells, fits within the size limits
// and has at least one safe cell
func (c GridConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid grid size %dx%d", c.Width, c.Height)
	}
	if c.Width > constants.MaxGridWidth || c.Height > constants.MaxGridHeight {
		return fmt.Errorf("grid size %dx%d exceeds %dx%d", c.Width, c.Height, constants.MaxGridWidth, constants.MaxGridHeight)
	}
	if c.Mines < 0 {
		return fmt.Errorf("invalid mine count %d", c.Mines)
	}
	if c.Mines >= c.Width*c.Height {
		return fmt.Errorf("mine count %d leaves no safe cell on a %dx%d grid", c.Mines, c.Width, c.Height)
	}
	return nil
}

// Cells returns the number of cells on the grid
func (c GridConfig) Cells() int {
	return c.Width * c.Height
}

// ToPortrait returns a copy whose height is not smaller than its width
func (c GridConfig) ToPortrait() GridConfig {
	if c.Width > c.Height {
		c.Width, c.Height = c.Height, c.Width
	}
	return c
}

// ToLandscape returns a copy whose width is not smaller than its height
func (c GridConfig) ToLandscape() GridConfig {
	if c.Height > c.Width {
		c.Width, c.Height = c.Height, c.Width
	}
	return c
}

func (c GridConfig) String() string {
	return fmt.Sprintf("%s %dx%d/%d", c.Difficulty, c.Width, c.Height, c.Mines)
}
