package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/dfs-maze/maze"
	"github.com/beka-birhanu/dfs-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 512
	defaultMaxSessions  = 1024
)

// Session-related errors.
var (
	ErrSessionNotFound   = errors.New("maze session not found")
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrTooManySessions   = errors.New("too many live maze sessions")
)

// Options holds configuration knobs for a SessionManager.
type Options struct {
	MaxDimension int // Upper bound on maze width and height
	MaxSessions  int // Upper bound on concurrently live sessions
}

// session pairs a maze engine with the mutex that gives its driver
// exclusive access between calls.
type session struct {
	mu   sync.Mutex
	maze *maze.Maze
}

// SessionManager keeps live maze engines in memory, keyed by session ID,
// and mediates every engine operation on behalf of remote callers. The
// engines themselves are single-caller by contract, so the manager wraps
// each mutation in a per-session lock from the registry plus an in-process
// mutex.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	registry i.SessionRegistry
	logger   i.Logger
	opts     *Options
}

// NewSessionManager creates a SessionManager backed by the given registry.
// Missing or out-of-range option values fall back to defaults.
func NewSessionManager(registry i.SessionRegistry, logger i.Logger, opts *Options) (i.MazeSessionManager, error) {
	if registry == nil {
		return nil, errors.New("session registry is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	if opts == nil {
		opts = &Options{}
	}
	if opts.MaxDimension < 1 {
		opts.MaxDimension = defaultMaxDimension
	}
	if opts.MaxSessions < 1 {
		opts.MaxSessions = defaultMaxSessions
	}

	return &SessionManager{
		sessions: make(map[uuid.UUID]*session),
		registry: registry,
		logger:   logger,
		opts:     opts,
	}, nil
}

// Create starts a new maze session seeded from entropy and returns its ID.
func (sm *SessionManager) Create(ctx context.Context, width, height int) (uuid.UUID, error) {
	if err := sm.checkDimensions(width, height); err != nil {
		return uuid.Nil, err
	}
	m, err := maze.New(width, height)
	if err != nil {
		return uuid.Nil, ErrInvalidDimensions
	}
	return sm.admit(ctx, m)
}

// CreateFromSeed starts a new maze session with a deterministic seed.
func (sm *SessionManager) CreateFromSeed(ctx context.Context, width, height int, seed int64) (uuid.UUID, error) {
	if err := sm.checkDimensions(width, height); err != nil {
		return uuid.Nil, err
	}
	m, err := maze.FromSeed(width, height, seed)
	if err != nil {
		return uuid.Nil, ErrInvalidDimensions
	}
	return sm.admit(ctx, m)
}

// checkDimensions enforces the service's dimension bounds before any cell
// store is allocated.
func (sm *SessionManager) checkDimensions(width, height int) error {
	if width < 1 || height < 1 || width > sm.opts.MaxDimension || height > sm.opts.MaxDimension {
		sm.logger.Warning(fmt.Sprintf("Rejected maze dimensions %dx%d", width, height))
		return ErrInvalidDimensions
	}
	return nil
}

// admit registers a freshly constructed engine as a live session.
func (sm *SessionManager) admit(ctx context.Context, m *maze.Maze) (uuid.UUID, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.opts.MaxSessions {
		sm.logger.Warning("Session limit reached, rejecting new maze")
		return uuid.Nil, ErrTooManySessions
	}

	id := uuid.New()
	sm.sessions[id] = &session{maze: m}
	if err := sm.registry.Register(ctx, id.String()); err != nil {
		delete(sm.sessions, id)
		sm.logger.Error(fmt.Sprintf("Registering session %s: %v", id, err))
		return uuid.Nil, err
	}

	sm.logger.Info(fmt.Sprintf("Maze session created: ID=%s size=%dx%d", id, m.Width(), m.Height()))
	return id, nil
}

// Step advances the session's traversal by one move.
func (sm *SessionManager) Step(ctx context.Context, id uuid.UUID) (bool, error) {
	done := false
	err := sm.withSession(ctx, id, func(m *maze.Maze) {
		done = m.Step()
	})
	return done, err
}

// Generate runs the session's traversal up to limit steps, unbounded when
// limit is below one.
func (sm *SessionManager) Generate(ctx context.Context, id uuid.UUID, limit int) (bool, error) {
	done := false
	err := sm.withSession(ctx, id, func(m *maze.Maze) {
		done = m.Generate(limit)
	})
	if err == nil && done {
		sm.logger.Info(fmt.Sprintf("Maze session fully generated: ID=%s", id))
	}
	return done, err
}

// Snapshot returns a copy of the session's dimensions, completion flag and
// packed cell grid.
func (sm *SessionManager) Snapshot(ctx context.Context, id uuid.UUID) (*i.MazeSnapshot, error) {
	var snapshot *i.MazeSnapshot
	err := sm.withSession(ctx, id, func(m *maze.Maze) {
		cells := m.Cells()
		packed := make([]byte, len(cells))
		for offset, cell := range cells {
			packed[offset] = byte(cell)
		}
		snapshot = &i.MazeSnapshot{
			Width:  m.Width(),
			Height: m.Height(),
			Done:   m.Done(),
			Cells:  packed,
		}
	})
	return snapshot, err
}

// Remove discards a session and its registry entry.
func (sm *SessionManager) Remove(ctx context.Context, id uuid.UUID) error {
	sm.mu.Lock()
	_, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	if err := sm.registry.Remove(ctx, id.String()); err != nil {
		sm.logger.Error(fmt.Sprintf("Removing session %s from registry: %v", id, err))
		return err
	}

	sm.logger.Info(fmt.Sprintf("Maze session removed: ID=%s", id))
	return nil
}

// withSession runs op on the session's engine while holding both the
// registry's per-session lock and the in-process mutex, then refreshes the
// session's liveness entry.
func (sm *SessionManager) withSession(ctx context.Context, id uuid.UUID, op func(*maze.Maze)) error {
	sm.mu.RLock()
	s, ok := sm.sessions[id]
	sm.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	unlock, err := sm.registry.Lock(ctx, id.String())
	if err != nil {
		sm.logger.Error(fmt.Sprintf("Locking session %s: %v", id, err))
		return err
	}
	defer unlock()

	s.mu.Lock()
	op(s.maze)
	s.mu.Unlock()

	if err := sm.registry.Touch(ctx, id.String()); err != nil {
		sm.logger.Warning(fmt.Sprintf("Touching session %s: %v", id, err))
	}
	return nil
}
