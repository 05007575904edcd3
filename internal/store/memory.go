// internal/store/memory.go
//
// In-memory session store.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Calls for the same session are serialized, so submissions apply in the
//     order they arrive; different sessions proceed independently.
//   - Idle sessions can be expired with Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Update runs fn with exclusive access to the session.
	// The error from fn is returned as is.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Get returns a snapshot of the session.
	Get(ctx context.Context, id string) (game.Snapshot, error)

	// Delete removes a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions idle for longer than idle and returns how many.
	Sweep(ctx context.Context, idle time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu      sync.Mutex // serializes access to sess
	sess    *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]*entry // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{sess: s, touched: m.now()}
	return nil
}

func (m *memory) lookup(id string) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	return e, ok
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	e, ok := m.lookup(id)
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	e.touched = m.now()
	return fn(e.sess)
}

func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	var snap game.Snapshot
	err := m.Update(ctx, id, func(s *game.Session) error {
		snap = s.Snapshot()
		return nil
	})
	return snap, err
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
