/*
Package maze implements a procedural maze generation engine over a
rectangular grid of cells.

A Maze is generated with a randomized depth-first traversal with
backtracking, producing a perfect maze: the open passages form a spanning
tree of the grid, so exactly one path connects any two cells and no cycles
exist.

Generation can run one move at a time with Step, which lets a caller
animate the traversal frame by frame, or in bulk with Generate, optionally
bounded by a step budget. All state lives in the Maze value between calls,
so a paused generation is resumable at any point.
*/
package maze

import (
	"errors"
	"math/rand"
	"time"
)

// ErrInvalidDimensions is returned when a maze is constructed with a
// width or height below one.
var ErrInvalidDimensions = errors.New("maze dimensions must be at least 1x1")

// Direction identifies one of the four orthogonal moves of the traversal.
type Direction uint8

// The four candidate directions considered on every generation step.
const (
	Left Direction = iota
	Right
	Top
	Bottom
)

// Maze is a rectangular grid of cells together with the state of an
// in-progress depth-first generation: the cursor (current position of the
// traversal), the tail (backtracking stack of visited positions), and a
// per-instance random source.
//
// A Maze is not safe for concurrent use; it is meant to be driven by a
// single caller between calls.
type Maze struct {
	width  int
	height int

	cursor Position
	tail   []Position
	cells  []Cell
	rng    *rand.Rand
}

// New creates a width x height maze seeded from the current time, so
// successive runs produce different mazes. Returns ErrInvalidDimensions
// if either dimension is below one.
func New(width, height int) (*Maze, error) {
	return FromSeed(width, height, time.Now().UnixNano())
}

// FromSeed creates a width x height maze with a deterministic random
// source: the same seed and dimensions always reproduce the same maze.
// Returns ErrInvalidDimensions if either dimension is below one.
func FromSeed(width, height int, seed int64) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = NewCell()
	}

	m := &Maze{
		width:  width,
		height: height,
		cursor: Position{X: 0, Y: 0},
		tail:   []Position{{X: 0, Y: 0}},
		cells:  cells,
		rng:    rand.New(rand.NewSource(seed)),
	}
	m.cells[0].SetVisited(true)
	return m, nil
}

// Width returns the number of columns in the maze.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows in the maze.
func (m *Maze) Height() int {
	return m.height
}

// Done returns true once the maze is fully generated, that is, once the
// backtracking tail has emptied.
func (m *Maze) Done() bool {
	return len(m.tail) == 0
}

// CellAt returns a copy of the cell at (x, y). The coordinates must
// satisfy 0 <= x < Width() and 0 <= y < Height(); out-of-range access is
// a programming error and panics.
func (m *Maze) CellAt(x, y int) Cell {
	return m.cells[m.cellOffset(x, y)]
}

// Cells returns the backing cell store in row-major order, one byte per
// cell. The slice aliases the maze's internal state: it stays valid and
// current across Step and Generate calls, and callers must not modify it.
func (m *Maze) Cells() []Cell {
	return m.cells
}

// cellOffset maps grid coordinates to an index into the flat cell store.
func (m *Maze) cellOffset(x, y int) int {
	return x + y*m.width
}

// cellAt returns a mutable reference to the cell at (x, y).
func (m *Maze) cellAt(x, y int) *Cell {
	return &m.cells[m.cellOffset(x, y)]
}

// neighbor returns the position one move from pos in direction dir, and
// whether that position lies inside the grid.
func (m *Maze) neighbor(pos Position, dir Direction) (Position, bool) {
	switch dir {
	case Left:
		if pos.X == 0 {
			return Position{}, false
		}
		return Position{X: pos.X - 1, Y: pos.Y}, true
	case Right:
		if pos.X >= m.width-1 {
			return Position{}, false
		}
		return Position{X: pos.X + 1, Y: pos.Y}, true
	case Top:
		if pos.Y == 0 {
			return Position{}, false
		}
		return Position{X: pos.X, Y: pos.Y - 1}, true
	default: // Bottom
		if pos.Y >= m.height-1 {
			return Position{}, false
		}
		return Position{X: pos.X, Y: pos.Y + 1}, true
	}
}

// Step advances the traversal by exactly one move and returns true if the
// maze is now fully generated.
//
// The four directions are shuffled with the maze's random source and the
// first one leading to an in-bounds, unvisited neighbor is taken: the wall
// spanning the crossed edge is cleared in whichever cell owns it, the
// cursor moves, and the new position is marked visited and pushed onto the
// tail. When no direction qualifies the traversal backtracks by popping
// the tail. Once the tail is empty every reachable cell has been carved,
// and Step reports completion without touching any state, so calling it
// again is harmless.
func (m *Maze) Step() bool {
	directions := [4]Direction{Left, Right, Top, Bottom}
	m.rng.Shuffle(len(directions), func(i, j int) {
		directions[i], directions[j] = directions[j], directions[i]
	})

	for _, dir := range directions {
		next, ok := m.neighbor(m.cursor, dir)
		if !ok || m.CellAt(next.X, next.Y).Visited() {
			continue
		}
		m.advance(dir, next)
		return false
	}

	// Dead end: backtrack one position, or finish if there is nowhere
	// left to backtrack to.
	if len(m.tail) == 0 {
		return true
	}
	m.cursor = m.tail[len(m.tail)-1]
	m.tail = m.tail[:len(m.tail)-1]
	return false
}

// advance carves the edge between the cursor and next, then moves onto
// next. Moving right or down clears the current cell's wall; moving left
// or up clears the destination cell's, because each edge is owned by the
// cell to its left or above.
func (m *Maze) advance(dir Direction, next Position) {
	switch dir {
	case Right:
		m.cellAt(m.cursor.X, m.cursor.Y).SetRightWall(false)
	case Bottom:
		m.cellAt(m.cursor.X, m.cursor.Y).SetBottomWall(false)
	case Left:
		m.cellAt(next.X, next.Y).SetRightWall(false)
	case Top:
		m.cellAt(next.X, next.Y).SetBottomWall(false)
	}

	m.cursor = next
	m.cellAt(m.cursor.X, m.cursor.Y).SetVisited(true)
	m.tail = append(m.tail, m.cursor)
}

// Generate runs Step repeatedly until the maze is fully generated or the
// step budget runs out, and returns true if generation completed. A limit
// below one means no budget: Generate runs to completion. When the budget
// is exhausted first, Generate returns false and the maze stays valid and
// resumable — a later Generate or Step call picks up where it stopped.
func (m *Maze) Generate(limit int) bool {
	for i := 0; limit < 1 || i < limit; i++ {
		if m.Step() {
			return true
		}
	}
	return false
}
