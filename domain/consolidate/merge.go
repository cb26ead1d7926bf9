// Package consolidate implements the merge and rewire algorithms that
// reduce a topic graph under oracle-proposed groupings.
package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"topicmap-backend/domain/graph"
)

// Merge folds oracle-proposed groups into the node set. It returns the
// reduced nodes and an id map carrying every pre-merge id to its
// representative id (identity for untouched nodes).
//
// A group is accepted only when at least 2 of its member ids exist in
// the input; malformed or too-small groups are dropped silently. The
// representative id of an accepted group is the minimum member id, so
// the outcome does not depend on group ordering. When two candidates
// claim the same representative id, the one with higher relevance wins.
func Merge(nodes []graph.Node, groups []graph.Group) ([]graph.Node, map[int]int) {
	byID := make(map[int]graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	idMap := make(map[int]int, len(nodes))
	grouped := make(map[int]bool)
	candidates := make(map[int]graph.Node)

	claim := func(rep int, node graph.Node) {
		if cur, ok := candidates[rep]; ok && cur.Relevance >= node.Relevance {
			return
		}
		candidates[rep] = node
	}

	for _, g := range groups {
		members := validMembers(g.MemberIDs, byID)
		if len(members) < 2 {
			continue
		}

		rep := members[0]
		maxRelevance := byID[rep].Relevance
		for _, id := range members {
			if r := byID[id].Relevance; r > maxRelevance {
				maxRelevance = r
			}
		}

		title := strings.TrimSpace(g.Label)
		if title == "" {
			title = generatedLabel(members)
		}
		summary := strings.TrimSpace(g.Summary)
		if summary == "" {
			summary = title
		}

		merged := graph.Node{
			ID:        rep,
			Title:     title,
			Summary:   summary,
			Papers:    []string{},
			Relevance: maxRelevance,
		}

		// Membership always maps to the representative, even when the
		// merged node itself loses a relevance tie-break: colliding
		// candidates share the representative id, so the mapping is
		// unambiguous either way.
		for _, id := range members {
			idMap[id] = rep
			grouped[id] = true
		}
		claim(rep, merged)
	}

	for _, n := range nodes {
		if grouped[n.ID] {
			continue
		}
		idMap[n.ID] = n.ID
		claim(n.ID, n)
	}

	out := make([]graph.Node, 0, len(candidates))
	for _, n := range candidates {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, idMap
}

// RepresentativeIDs returns the set of ids that absorbed at least one
// other id in the given mapping.
func RepresentativeIDs(idMap map[int]int) map[int]bool {
	reps := make(map[int]bool)
	for from, to := range idMap {
		if from != to {
			reps[to] = true
		}
	}
	return reps
}

// validMembers filters member ids down to ones that exist, dropping
// duplicates, and returns them sorted so the minimum is first.
func validMembers(memberIDs []int, byID map[int]graph.Node) []int {
	seen := make(map[int]bool, len(memberIDs))
	members := make([]int, 0, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := byID[id]; ok {
			members = append(members, id)
		}
	}
	sort.Ints(members)
	return members
}

func generatedLabel(members []int) string {
	parts := make([]string, len(members))
	for i, id := range members {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "Merged " + strings.Join(parts, "+")
}
