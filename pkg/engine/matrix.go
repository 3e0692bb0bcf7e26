package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/sweeper/pkg/game/types"
	"github.com/cbodonnell/sweeper/pkg/log"
)

var logger = log.Named("engine")

type cell struct {
	mine     bool
	status   types.CellStatus
	adjacent int
	sink     CellSink
}

// Matrix is the grid engine. It is not safe for concurrent use.
type Matrix struct {
	width       int
	height      int
	mines       int
	cells       []cell
	status      types.GameStatus
	remaining   int
	revealed    int
	minesPlaced bool

	random    *rand.Rand
	preset    []types.Position
	listeners []Listener
}

// NewMatrixOptions contains options for creating a new Matrix
type NewMatrixOptions struct {
	// Seed seeds the mine placement. Zero seeds from the current time.
	Seed int64
	// Mines is a fixed mine layout used by every grid instead of random
	// placement. The layout is placed when the grid is created.
	Mines []types.Position
}

// NewMatrix creates an engine without a grid. CreateGrid must be called before any command.
func NewMatrix(opts NewMatrixOptions) *Matrix {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	preset := make([]types.Position, len(opts.Mines))
	copy(preset, opts.Mines)
	return &Matrix{
		random:    rand.New(rand.NewSource(seed)),
		preset:    preset,
		listeners: make([]Listener, 0, 2),
	}
}

func (m *Matrix) CreateGrid(width, height, mines int) error {
	if err := types.NewCustomGridConfig(width, height, mines).Validate(); err != nil {
		return err
	}
	if len(m.preset) > 0 && len(m.preset) != mines {
		return fmt.Errorf("mine layout holds %d mines, grid wants %d", len(m.preset), mines)
	}
	for _, p := range m.preset {
		if !p.Within(width, height) {
			return &OutOfBoundsError{Position: p, Width: width, Height: height}
		}
	}

	m.width = width
	m.height = height
	m.mines = mines
	m.cells = make([]cell, width*height)
	m.status = types.GameStatusReady
	m.remaining = mines
	m.revealed = 0
	m.minesPlaced = false

	if len(m.preset) > 0 {
		for _, p := range m.preset {
			m.cells[m.index(p)].mine = true
		}
		m.countAdjacent()
		m.minesPlaced = true
	}

	logger.Debug("Created grid %dx%d with %d mines", width, height, mines)
	return nil
}

func (m *Matrix) RevealCell(p types.Position) (int, error) {
	if err := m.checkBounds(p); err != nil {
		return 0, err
	}
	if m.status.IsTerminal() {
		return 0, nil
	}
	if !m.minesPlaced {
		m.placeMines(p)
	}
	m.begin()

	start := m.cells[m.index(p)]
	if start.status != types.CellStatusHidden && start.status != types.CellStatusQueried {
		return 0, nil
	}

	if start.mine {
		m.setCell(p, types.CellStatusExplodedMine)
		m.setStatus(types.GameStatusLost)
		return start.adjacent, nil
	}

	revealed := m.flood(p)
	logger.Trace("Revealed %d cells from %s", revealed, p)
	if m.revealed == len(m.cells)-m.mines {
		m.setStatus(types.GameStatusWon)
	}
	return start.adjacent, nil
}

// flood reveals p and spreads through the neighbours of every revealed cell
// that has no adjacent mine
func (m *Matrix) flood(p types.Position) int {
	revealed := 0
	pending := []types.Position{p}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]

		c := m.cells[m.index(next)]
		if c.mine || (c.status != types.CellStatusHidden && c.status != types.CellStatusQueried) {
			continue
		}
		m.setCell(next, types.CellStatusRevealed)
		m.revealed++
		revealed++

		if c.adjacent == 0 {
			pending = append(pending, m.neighbours(next)...)
		}
	}
	return revealed
}

func (m *Matrix) CycleMark(p types.Position) error {
	if err := m.checkBounds(p); err != nil {
		return err
	}
	if m.status.IsTerminal() {
		return nil
	}
	m.begin()

	switch m.cells[m.index(p)].status {
	case types.CellStatusHidden:
		m.setCell(p, types.CellStatusMarked)
		m.setRemaining(m.remaining - 1)
	case types.CellStatusMarked:
		m.setCell(p, types.CellStatusQueried)
		m.setRemaining(m.remaining + 1)
	case types.CellStatusQueried:
		m.setCell(p, types.CellStatusHidden)
	}
	return nil
}

func (m *Matrix) Status() types.GameStatus {
	return m.status
}

func (m *Matrix) RemainingMines() int {
	return m.remaining
}

func (m *Matrix) SetCellSink(sink CellSink) error {
	p := sink.Position()
	if err := m.checkBounds(p); err != nil {
		return err
	}
	m.cells[m.index(p)].sink = sink
	return nil
}

func (m *Matrix) AddListener(l Listener) {
	for _, existing := range m.listeners {
		if existing == l {
			return
		}
	}
	m.listeners = append(m.listeners, l)
}

func (m *Matrix) RemoveListener(l Listener) {
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// Width returns the width of the current grid
func (m *Matrix) Width() int {
	return m.width
}

// Height returns the height of the current grid
func (m *Matrix) Height() int {
	return m.height
}

// CellStatus returns the status of the cell at p
func (m *Matrix) CellStatus(p types.Position) (types.CellStatus, error) {
	if err := m.checkBounds(p); err != nil {
		return types.CellStatusHidden, err
	}
	return m.cells[m.index(p)].status, nil
}

// IsMine returns true if a mine has been placed at p
func (m *Matrix) IsMine(p types.Position) bool {
	if !p.Within(m.width, m.height) {
		return false
	}
	return m.cells[m.index(p)].mine
}

func (m *Matrix) begin() {
	if m.status == types.GameStatusReady {
		m.setStatus(types.GameStatusRunning)
	}
}

func (m *Matrix) placeMines(first types.Position) {
	firstIndex := m.index(first)
	placed := 0
	for _, candidate := range m.random.Perm(len(m.cells)) {
		if placed == m.mines {
			break
		}
		if candidate == firstIndex {
			continue
		}
		m.cells[candidate].mine = true
		placed++
	}
	m.countAdjacent()
	m.minesPlaced = true
	logger.Trace("Placed %d mines avoiding %s", placed, first)
}

func (m *Matrix) countAdjacent() {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			p := types.NewPosition(x, y)
			n := 0
			for _, q := range m.neighbours(p) {
				if m.cells[m.index(q)].mine {
					n++
				}
			}
			m.cells[m.index(p)].adjacent = n
		}
	}
}

func (m *Matrix) neighbours(p types.Position) []types.Position {
	result := make([]types.Position, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			q := types.NewPosition(p.X+dx, p.Y+dy)
			if q.Within(m.width, m.height) {
				result = append(result, q)
			}
		}
	}
	return result
}

// setCell updates the sink of the cell before the listeners
func (m *Matrix) setCell(p types.Position, status types.CellStatus) {
	c := &m.cells[m.index(p)]
	c.status = status
	if c.sink != nil {
		c.sink.UpdateCell(status, c.adjacent)
	}
	for _, l := range m.listeners {
		l.OnCellChanged(p, status, c.adjacent)
	}
}

func (m *Matrix) setStatus(status types.GameStatus) {
	m.status = status
	for _, l := range m.listeners {
		l.OnStatusChanged(status)
	}
}

func (m *Matrix) setRemaining(remaining int) {
	m.remaining = remaining
	for _, l := range m.listeners {
		l.OnRemainingMinesChanged(remaining)
	}
}

func (m *Matrix) checkBounds(p types.Position) error {
	if !p.Within(m.width, m.height) {
		return &OutOfBoundsError{Position: p, Width: m.width, Height: m.height}
	}
	return nil
}

func (m *Matrix) index(p types.Position) int {
	return p.Y*m.width + p.X
}
