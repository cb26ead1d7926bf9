// Package reconcile maintains a monotone client-side view of the
// topic graph across successive server snapshots. Applying a snapshot
// never removes anything the client already knows about; nodes are
// overlaid field by field and edges accumulate.
package reconcile

import (
	"sort"
	"sync"

	"topicmap-backend/domain/graph"
)

// View is the client's accumulated picture of the graph. Safe for
// concurrent use.
type View struct {
	mu    sync.RWMutex
	nodes map[int]graph.Node
	edges map[graph.EdgeKey]graph.Edge
}

// NewView creates an empty view.
func NewView() *View {
	return &View{
		nodes: make(map[int]graph.Node),
		edges: make(map[graph.EdgeKey]graph.Edge),
	}
}

// Apply folds a server snapshot into the view. Incoming node fields
// overlay known ones, but a zero field keeps the old value: a missing
// summary does not erase the summary the client already has. Edges
// only ever accumulate; a known edge keeps its original reasoning.
func (v *View) Apply(g *graph.Graph) {
	if g == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, incoming := range g.Nodes {
		merged := v.nodes[incoming.ID]
		merged.ID = incoming.ID
		if incoming.Title != "" {
			merged.Title = incoming.Title
		}
		if incoming.Summary != "" {
			merged.Summary = incoming.Summary
		}
		if incoming.Papers != nil {
			merged.Papers = append([]string(nil), incoming.Papers...)
		}
		if incoming.Relevance != 0 {
			merged.Relevance = incoming.Relevance
		}
		v.nodes[incoming.ID] = merged
	}

	for _, e := range g.Edges {
		key := e.Key()
		if _, known := v.edges[key]; !known {
			v.edges[key] = e
		}
	}
}

// Nodes returns the known nodes sorted by id.
func (v *View) Nodes() []graph.Node {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]graph.Node, 0, len(v.nodes))
	for _, n := range v.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns the known edges in a stable order.
func (v *View) Edges() []graph.Edge {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]graph.Edge, 0, len(v.edges))
	for _, e := range v.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].Key(), out[j].Key()
		if ki.Lo != kj.Lo {
			return ki.Lo < kj.Lo
		}
		return ki.Hi < kj.Hi
	})
	return out
}

// Node looks up a single node by id.
func (v *View) Node(id int) (graph.Node, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n, ok := v.nodes[id]
	return n, ok
}

// Len reports the number of known nodes and edges.
func (v *View) Len() (nodes, edges int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.nodes), len(v.edges)
}
