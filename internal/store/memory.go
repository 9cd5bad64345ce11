// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for development/testing, or when sessions need not survive a restart.
//
// Characteristics:
//   - Stores snapshots keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Optional TTL; expired entries are dropped lazily on access.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

type memEntry struct {
	snap    game.Snapshot
	expires time.Time // zero means never
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]memEntry // keyed by Snapshot.ID
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]memEntry), ttl: ttl, now: time.Now}
}

// Save adds or updates the session. The snapshot is copied so later changes
// by the caller do not leak into the store.
func (m *memory) Save(ctx context.Context, s game.Snapshot) error {
	if err := requireID(s); err != nil {
		return err
	}
	e := memEntry{snap: clone(s)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = e
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		_ = m.Delete(ctx, id)
		return game.Snapshot{}, ErrNotFound
	}
	return clone(e.snap), nil
}

// Delete removes a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Close() error { return nil }

func clone(s game.Snapshot) game.Snapshot {
	c := s
	if s.Guesses != nil {
		c.Guesses = append(make([]string, 0, len(s.Guesses)), s.Guesses...)
	}
	if s.Marks != nil {
		c.Marks = make([][]game.Mark, 0, len(s.Marks))
		for _, row := range s.Marks {
			c.Marks = append(c.Marks, append([]game.Mark(nil), row...))
		}
	}
	return c
}
