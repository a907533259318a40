package i

import (
	"context"

	"github.com/google/uuid"
)

// MazeSnapshot is a point-in-time copy of a maze session's observable
// state: its dimensions, whether generation has finished, and the packed
// cell grid in row-major order, one byte per cell.
type MazeSnapshot struct {
	Width  int    // Width of the maze (number of columns)
	Height int    // Height of the maze (number of rows)
	Done   bool   // Done reports whether generation has completed
	Cells  []byte // Cells is the packed cell grid, row-major
}

// MazeSessionManager owns live maze generation sessions and drives their
// engines on behalf of remote callers.
type MazeSessionManager interface {
	// Create starts a new maze session with a non-deterministic seed and
	// returns its ID.
	Create(ctx context.Context, width, height int) (uuid.UUID, error)

	// CreateFromSeed starts a new maze session with a deterministic seed:
	// the same seed and dimensions always reproduce the same maze.
	CreateFromSeed(ctx context.Context, width, height int, seed int64) (uuid.UUID, error)

	// Step advances the session's traversal by one move. Returns true if
	// the maze is now fully generated.
	Step(ctx context.Context, id uuid.UUID) (bool, error)

	// Generate runs the session's traversal up to limit steps, unbounded
	// when limit is below one. Returns true if generation completed within
	// the budget; a false return leaves the session resumable.
	Generate(ctx context.Context, id uuid.UUID, limit int) (bool, error)

	// Snapshot returns a copy of the session's current state.
	Snapshot(ctx context.Context, id uuid.UUID) (*MazeSnapshot, error)

	// Remove discards a session.
	Remove(ctx context.Context, id uuid.UUID) error
}
