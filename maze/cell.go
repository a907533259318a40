package maze

// Cell packs the per-cell state of the maze grid into a single byte.
// Three independent flags are stored as bits: whether the traversal has
// visited the cell, and whether the walls on its right and bottom edges
// are still closed.
//
// Wall ownership is asymmetric: the edge between (x,y) and (x+1,y) is
// recorded only in (x,y)'s right-wall bit, and the edge between (x,y)
// and (x,y+1) only in (x,y)'s bottom-wall bit. There is no left or top
// wall bit; a cell's left and top edges belong to its neighbors. The
// rightmost column and bottommost row keep their wall bits set for the
// lifetime of the maze — they are the outer boundary.
type Cell uint8

const (
	cellVisited    Cell = 1 << iota // traversal has entered this cell
	cellRightWall                   // edge to the right neighbor is closed
	cellBottomWall                  // edge to the neighbor below is closed
)

// NewCell returns the default cell: unvisited, with both owned walls up.
func NewCell() Cell {
	return cellRightWall | cellBottomWall
}

// Visited returns true if the traversal has entered this cell.
func (c Cell) Visited() bool {
	return c&cellVisited != 0
}

// HasRightWall returns true if the wall toward the right neighbor is closed.
func (c Cell) HasRightWall() bool {
	return c&cellRightWall != 0
}

// HasBottomWall returns true if the wall toward the neighbor below is closed.
func (c Cell) HasBottomWall() bool {
	return c&cellBottomWall != 0
}

// SetVisited sets whether the traversal has entered this cell.
func (c *Cell) SetVisited(visited bool) {
	c.setFlag(cellVisited, visited)
}

// SetRightWall sets the presence of the wall toward the right neighbor.
func (c *Cell) SetRightWall(hasWall bool) {
	c.setFlag(cellRightWall, hasWall)
}

// SetBottomWall sets the presence of the wall toward the neighbor below.
func (c *Cell) SetBottomWall(hasWall bool) {
	c.setFlag(cellBottomWall, hasWall)
}

func (c *Cell) setFlag(flag Cell, on bool) {
	if on {
		*c |= flag
	} else {
		*c &^= flag
	}
}

// Position is the location of a cell in the maze grid. It is a plain
// value; two positions name the same cell exactly when their coordinates
// are equal.
type Position struct {
	X int // Column index of the cell
	Y int // Row index of the cell
}
