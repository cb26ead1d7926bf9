package consolidate

import "topicmap-backend/domain/graph"

// Rewire translates edge endpoints through the id map and keeps the
// edge set well-formed over representative ids: edges referencing ids
// absent from the map are dropped, edges whose endpoints collapse to the
// same node are dropped, and duplicates on the canonical undirected key
// keep the first occurrence in input order.
func Rewire(edges []graph.Edge, idMap map[int]int) []graph.Edge {
	out := make([]graph.Edge, 0, len(edges))
	seen := make(map[graph.EdgeKey]bool, len(edges))

	for _, e := range edges {
		a, ok1 := idMap[e.NodeID1]
		b, ok2 := idMap[e.NodeID2]
		if !ok1 || !ok2 {
			continue
		}
		if a == b {
			continue
		}

		rewired := graph.Edge{NodeID1: a, NodeID2: b, Reasoning: e.Reasoning}
		key := rewired.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rewired)
	}

	return out
}
