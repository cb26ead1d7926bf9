// Package graph defines the persisted topic graph: nodes, undirected
// edges, and the oracle group shape consumed by consolidation.
package graph

import "sort"

// Node is a research topic. IDs are unique within a snapshot.
type Node struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	Papers    []string `json:"papers"`
	Relevance float64  `json:"relevance"`
}

// Edge is an unordered pair of node ids with free-text reasoning.
type Edge struct {
	NodeID1   int    `json:"nodeID1"`
	NodeID2   int    `json:"nodeID2"`
	Reasoning string `json:"reasoning"`
}

// EdgeKey is the canonical undirected identity of an edge: the sorted
// (min, max) endpoint pair. Two edges with equal keys describe the same
// relationship.
type EdgeKey struct {
	Lo int
	Hi int
}

// Key returns the canonical key for the edge.
func (e Edge) Key() EdgeKey {
	if e.NodeID1 <= e.NodeID2 {
		return EdgeKey{Lo: e.NodeID1, Hi: e.NodeID2}
	}
	return EdgeKey{Lo: e.NodeID2, Hi: e.NodeID1}
}

// Graph is the sole unit of durable state: read, transformed, and
// written back wholesale.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Group is one oracle proposal: a set of node ids that name the same
// underlying topic. Ephemeral; consumed by one consolidation run.
type Group struct {
	Label     string `json:"label"`
	MemberIDs []int  `json:"memberIds"`
	Summary   string `json:"summary"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Empty returns a graph with zero nodes and edges, the shape served
// when nothing has been stored yet.
func Empty() *Graph {
	return &Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// Normalize fills fields older persisted snapshots may lack: a missing
// summary defaults to the title, and nil slices become empty ones so the
// graph always serializes as [] rather than null.
func (g *Graph) Normalize() {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	for i := range g.Nodes {
		if g.Nodes[i].Summary == "" {
			g.Nodes[i].Summary = g.Nodes[i].Title
		}
		if g.Nodes[i].Papers == nil {
			g.Nodes[i].Papers = []string{}
		}
	}
}

// Clone returns a deep copy.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Edges, g.Edges)
	for i, n := range g.Nodes {
		papers := make([]string, len(n.Papers))
		copy(papers, n.Papers)
		n.Papers = papers
		out.Nodes[i] = n
	}
	return out
}

// SortNodes orders nodes by id in place. Output ordering is otherwise
// unspecified; sorting keeps responses and tests deterministic.
func (g *Graph) SortNodes() {
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
}

// Stats summarizes graph size.
type Stats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	return Stats{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges)}
}
