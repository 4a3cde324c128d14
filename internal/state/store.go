package state

import (
	"sync"
	"time"
)

// Store guards a State behind one dispatch entry point. Reductions are
// synchronous; the lock only exists because network commands resolve on
// other goroutines.
type Store struct {
	mu    sync.RWMutex
	state State

	// now is injectable so staleness behavior is testable.
	now func() time.Time
}

// NewStore returns a store holding Initial().
func NewStore() *Store {
	return &Store{state: Initial(), now: time.Now}
}

// NewStoreAt returns a store with a fixed clock source (tests).
func NewStoreAt(now func() time.Time) *Store {
	return &Store{state: Initial(), now: now}
}

// Dispatch applies one action.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a, s.now())
}

// Snapshot returns the current state. Slices inside the snapshot are shared
// with the store and must be treated as read-only; the reducer always builds
// fresh ones instead of mutating.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Now reports the store's clock (the fetch layer shares it for staleness
// checks).
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}
