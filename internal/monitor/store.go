package monitor

import "sync"

// Store holds the last-observed state per tracked pull request. The monitor
// is the only writer; the mutex serializes writes when per-PR processing fans
// out within a cycle.
type Store struct {
	mu     sync.Mutex
	states map[PrIdentity]PrState
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		states: make(map[PrIdentity]PrState),
	}
}

// Get returns the stored snapshot for id, if any.
func (s *Store) Get(id PrIdentity) (PrState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	return state, ok
}

// Put overwrites the stored snapshot for id.
func (s *Store) Put(id PrIdentity, state PrState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

// Len returns the number of tracked pull requests.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// RemoveNotIn deletes every stored identity absent from seen. Called once per
// poll cycle so state is never retained for a PR that left the open set.
func (s *Store) RemoveNotIn(seen map[PrIdentity]struct{}) []PrIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []PrIdentity
	for id := range s.states {
		if _, ok := seen[id]; !ok {
			delete(s.states, id)
			removed = append(removed, id)
		}
	}
	return removed
}
