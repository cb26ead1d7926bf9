// Package layout tracks screen positions for graph nodes between
// renders so consolidation does not scatter the map the user is
// looking at.
package layout

import "sync"

// Position is a 2D layout coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionStore remembers where each node is drawn. Safe for
// concurrent use.
type PositionStore struct {
	mu        sync.RWMutex
	positions map[int]Position
	center    Position
}

// NewPositionStore creates a store that seeds unseen nodes at the
// given viewport center.
func NewPositionStore(center Position) *PositionStore {
	return &PositionStore{
		positions: make(map[int]Position),
		center:    center,
	}
}

// Seed assigns the default center position to any listed node that
// has no position yet. Known nodes keep their coordinates.
func (s *PositionStore) Seed(nodeIDs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range nodeIDs {
		if _, ok := s.positions[id]; !ok {
			s.positions[id] = s.center
		}
	}
}

// Set records a node's position, for example after the user drags it.
func (s *PositionStore) Set(nodeID int, p Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[nodeID] = p
}

// Get returns a node's position if one has been recorded.
func (s *PositionStore) Get(nodeID int) (Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[nodeID]
	return p, ok
}

// Len reports how many nodes have positions.
func (s *PositionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}
