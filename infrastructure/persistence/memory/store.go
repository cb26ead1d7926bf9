// Package memory provides an in-process graph store used by tests and
// the default development configuration.
package memory

import (
	"context"
	"sync"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
)

// Store holds the graph blob behind a mutex. Load and Save copy so
// callers never alias stored state.
type Store struct {
	mu   sync.RWMutex
	blob *graph.Graph
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load returns a copy of the stored graph, or ports.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blob == nil {
		return nil, ports.ErrNotFound
	}
	return s.blob.Clone(), nil
}

// Save overwrites the stored graph.
func (s *Store) Save(ctx context.Context, g *graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = g.Clone()
	return nil
}
