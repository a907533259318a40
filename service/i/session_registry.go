package i

import "context"

// SessionRegistry tracks which maze sessions are live and serializes
// access to each one. It holds liveness metadata only, never maze cell
// state.
type SessionRegistry interface {
	// Register records a new live session.
	Register(ctx context.Context, id string) error

	// Touch refreshes a session's last-activity time so it is not expired.
	Touch(ctx context.Context, id string) error

	// Remove drops a session from the registry.
	Remove(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) int64

	// Lock acquires an exclusive per-session lock and returns the function
	// that releases it. While held, no other driver may mutate the session.
	Lock(ctx context.Context, id string) (func(), error)
}
