// Package ports defines the capability interfaces the consolidation
// engine depends on. Adapters live under infrastructure.
package ports

import (
	"context"
	"errors"

	"topicmap-backend/domain/graph"
)

// ErrNotFound is returned by GraphStore.Load when nothing has been
// stored yet. Callers treat it as an empty graph, not a failure.
var ErrNotFound = errors.New("graph not found")

// GraphStore persists the graph blob at a single fixed key with
// overwrite semantics. No partial updates, no versioning.
type GraphStore interface {
	Load(ctx context.Context) (*graph.Graph, error)
	Save(ctx context.Context, g *graph.Graph) error
}

// Topic is the per-node slice of state sent to the clustering oracle.
type Topic struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
}

// Oracle proposes which topics name the same underlying subject. Its
// reasoning is opaque; a response that does not match the group schema
// is an error that aborts the consolidation run.
type Oracle interface {
	ProposeGroups(ctx context.Context, topics []Topic) ([]graph.Group, error)
}

// PaperSearcher looks up reference links for a topic. Implementations
// return at most limit results; an error or timeout means the caller
// moves on, it never fails a run.
type PaperSearcher interface {
	Name() string
	Search(ctx context.Context, topic string, limit int) ([]string, error)
}
