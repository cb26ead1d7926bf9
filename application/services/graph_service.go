// Package services exposes the application operations behind the HTTP
// surface: reading, replacing, and summarizing the stored graph.
package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

// GraphService wraps the graph store with the read/replace contract the
// HTTP surface honors.
type GraphService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewGraphService creates a graph service.
func NewGraphService(store ports.GraphStore, logger *zap.Logger) *GraphService {
	return &GraphService{store: store, logger: logger}
}

// Load returns the stored graph, or an empty graph when nothing has
// been stored yet.
func (s *GraphService) Load(ctx context.Context) (*graph.Graph, error) {
	g, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return graph.Empty(), nil
		}
		return nil, err
	}
	g.Normalize()
	return g, nil
}

// Replace validates a raw payload and stores it wholesale. The payload
// is gated before the write: malformed input never reaches the store.
func (s *GraphService) Replace(ctx context.Context, payload []byte) (*graph.Graph, error) {
	g, err := graph.ValidateGraphPayload(payload)
	if err != nil {
		return nil, err
	}
	g.Normalize()

	if err := s.store.Save(ctx, g); err != nil {
		return nil, appErrors.Wrap(err, "graph write failed")
	}

	s.logger.Info("Graph replaced",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return g, nil
}

// Stats returns node and edge counts for the stored graph.
func (s *GraphService) Stats(ctx context.Context) (graph.Stats, error) {
	g, err := s.Load(ctx)
	if err != nil {
		return graph.Stats{}, err
	}
	return g.Stats(), nil
}
