package position

import "sync"

// Position is a signed screen coordinate in physical pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Store holds the last known overlay position.
// It keeps at most one value, is overwritten on every Save, and starts empty.
type Store struct {
	mu    sync.Mutex
	pos   Position
	valid bool
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// Save overwrites the stored position
func (s *Store) Save(pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = pos
	s.valid = true
}

// Get returns the stored position, or false if nothing was saved yet
func (s *Store) Get() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, s.valid
}
