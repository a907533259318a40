package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeRegistry is an in-memory stand-in for the Redis-backed registry.
type fakeRegistry struct {
	mu      sync.Mutex
	live    map[string]bool
	touches int
	locks   int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{live: make(map[string]bool)}
}

func (r *fakeRegistry) Register(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[id] = true
	return nil
}

func (r *fakeRegistry) Touch(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touches++
	return nil
}

func (r *fakeRegistry) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
	return nil
}

func (r *fakeRegistry) Count(_ context.Context) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.live))
}

func (r *fakeRegistry) Lock(_ context.Context, _ string) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks++
	return func() {}, nil
}

// silentLogger discards all log output in tests.
type silentLogger struct{}

func (silentLogger) Info(string) {}

func (silentLogger) Warning(string) {}

func (silentLogger) Error(string) {}

func TestSessionManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects nil dependencies", func(t *testing.T) {
		_, err := NewSessionManager(nil, silentLogger{}, nil)
		assert.Error(t, err)

		_, err = NewSessionManager(newFakeRegistry(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("Creates a session and snapshots its initial state", func(t *testing.T) {
		registry := newFakeRegistry()
		sm, err := NewSessionManager(registry, silentLogger{}, nil)
		assert.NoError(t, err)

		id, err := sm.Create(ctx, 4, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), registry.Count(ctx))

		snapshot, err := sm.Snapshot(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, 4, snapshot.Width)
		assert.Equal(t, 3, snapshot.Height)
		assert.False(t, snapshot.Done)
		assert.Len(t, snapshot.Cells, 12)

		// Start cell carries visited plus both wall bits; the rest only walls.
		assert.Equal(t, byte(0b111), snapshot.Cells[0])
		for offset, cell := range snapshot.Cells[1:] {
			assert.Equal(t, byte(0b110), cell, "cell at offset %d", offset+1)
		}
	})

	t.Run("Rejects out-of-range dimensions", func(t *testing.T) {
		sm, err := NewSessionManager(newFakeRegistry(), silentLogger{}, &Options{MaxDimension: 16})
		assert.NoError(t, err)

		for _, dims := range [][2]int{{0, 4}, {4, 0}, {-2, 4}, {17, 4}, {4, 17}} {
			_, err := sm.Create(ctx, dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dimensions %v", dims)

			_, err = sm.CreateFromSeed(ctx, dims[0], dims[1], 1)
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dimensions %v", dims)
		}
	})

	t.Run("Enforces the session limit", func(t *testing.T) {
		sm, err := NewSessionManager(newFakeRegistry(), silentLogger{}, &Options{MaxSessions: 1})
		assert.NoError(t, err)

		first, err := sm.Create(ctx, 3, 3)
		assert.NoError(t, err)

		_, err = sm.Create(ctx, 3, 3)
		assert.ErrorIs(t, err, ErrTooManySessions)

		// Removing the live session frees a slot.
		assert.NoError(t, sm.Remove(ctx, first))
		_, err = sm.Create(ctx, 3, 3)
		assert.NoError(t, err)
	})

	t.Run("Unknown session IDs are reported", func(t *testing.T) {
		sm, err := NewSessionManager(newFakeRegistry(), silentLogger{}, nil)
		assert.NoError(t, err)

		id, err := sm.Create(ctx, 2, 2)
		assert.NoError(t, err)
		assert.NoError(t, sm.Remove(ctx, id))

		_, err = sm.Step(ctx, id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		_, err = sm.Generate(ctx, id, 0)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		_, err = sm.Snapshot(ctx, id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, sm.Remove(ctx, id), ErrSessionNotFound)
	})

	t.Run("Seeded sessions reproduce the same maze", func(t *testing.T) {
		sm, err := NewSessionManager(newFakeRegistry(), silentLogger{}, nil)
		assert.NoError(t, err)

		first, err := sm.CreateFromSeed(ctx, 8, 5, 31)
		assert.NoError(t, err)
		second, err := sm.CreateFromSeed(ctx, 8, 5, 31)
		assert.NoError(t, err)

		done, err := sm.Generate(ctx, first, 0)
		assert.NoError(t, err)
		assert.True(t, done)
		done, err = sm.Generate(ctx, second, 0)
		assert.NoError(t, err)
		assert.True(t, done)

		firstSnap, err := sm.Snapshot(ctx, first)
		assert.NoError(t, err)
		secondSnap, err := sm.Snapshot(ctx, second)
		assert.NoError(t, err)
		assert.Equal(t, firstSnap.Cells, secondSnap.Cells)
	})

	t.Run("Budgeted generation pauses and resumes", func(t *testing.T) {
		registry := newFakeRegistry()
		sm, err := NewSessionManager(registry, silentLogger{}, nil)
		assert.NoError(t, err)

		id, err := sm.CreateFromSeed(ctx, 6, 6, 12)
		assert.NoError(t, err)

		done, err := sm.Generate(ctx, id, 3)
		assert.NoError(t, err)
		assert.False(t, done)

		snapshot, err := sm.Snapshot(ctx, id)
		assert.NoError(t, err)
		assert.False(t, snapshot.Done)

		done, err = sm.Generate(ctx, id, 0)
		assert.NoError(t, err)
		assert.True(t, done)

		snapshot, err = sm.Snapshot(ctx, id)
		assert.NoError(t, err)
		assert.True(t, snapshot.Done)
		assert.Positive(t, registry.touches)
		assert.Positive(t, registry.locks)
	})

	t.Run("Stepping a 1x1 session completes on the second move", func(t *testing.T) {
		sm, err := NewSessionManager(newFakeRegistry(), silentLogger{}, nil)
		assert.NoError(t, err)

		id, err := sm.CreateFromSeed(ctx, 1, 1, 0)
		assert.NoError(t, err)

		done, err := sm.Step(ctx, id)
		assert.NoError(t, err)
		assert.False(t, done)

		done, err = sm.Step(ctx, id)
		assert.NoError(t, err)
		assert.True(t, done)
	})
}
