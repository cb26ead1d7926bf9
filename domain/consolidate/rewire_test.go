package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topicmap-backend/domain/graph"
)

func identityMap(ids ...int) map[int]int {
	m := make(map[int]int, len(ids))
	for _, id := range ids {
		m[id] = id
	}
	return m
}

func TestRewire_FirstOccurrenceWinsOnDuplicates(t *testing.T) {
	edges := []graph.Edge{
		{NodeID1: 1, NodeID2: 2, Reasoning: "a"},
		{NodeID1: 2, NodeID2: 1, Reasoning: "b"},
	}

	out := Rewire(edges, identityMap(1, 2))

	require.Len(t, out, 1)
	assert.Equal(t, graph.Edge{NodeID1: 1, NodeID2: 2, Reasoning: "a"}, out[0])
}

func TestRewire_DropsEdgesWithUnknownEndpoints(t *testing.T) {
	edges := []graph.Edge{
		{NodeID1: 1, NodeID2: 99, Reasoning: "dangling"},
		{NodeID1: 1, NodeID2: 2, Reasoning: "kept"},
	}

	out := Rewire(edges, identityMap(1, 2))

	require.Len(t, out, 1)
	assert.Equal(t, "kept", out[0].Reasoning)
}

func TestRewire_DropsSelfLoopsAfterTranslation(t *testing.T) {
	idMap := map[int]int{1: 1, 2: 1, 3: 3}
	edges := []graph.Edge{
		{NodeID1: 1, NodeID2: 2, Reasoning: "collapses"},
		{NodeID1: 2, NodeID2: 3, Reasoning: "survives"},
	}

	out := Rewire(edges, idMap)

	require.Len(t, out, 1)
	assert.Equal(t, graph.Edge{NodeID1: 1, NodeID2: 3, Reasoning: "survives"}, out[0])
}

func TestRewire_DedupsTranslatedEdges(t *testing.T) {
	// 2 and 4 both map to their group representatives, producing two
	// copies of the same canonical edge.
	idMap := map[int]int{1: 1, 2: 1, 3: 3, 4: 3}
	edges := []graph.Edge{
		{NodeID1: 1, NodeID2: 3, Reasoning: "first"},
		{NodeID1: 2, NodeID2: 4, Reasoning: "second"},
		{NodeID1: 3, NodeID2: 1, Reasoning: "third"},
	}

	out := Rewire(edges, idMap)

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Reasoning)
}

func TestRewire_KeepsTranslatedOrientation(t *testing.T) {
	idMap := map[int]int{5: 2, 1: 1}
	edges := []graph.Edge{
		{NodeID1: 5, NodeID2: 1, Reasoning: "x"},
	}

	out := Rewire(edges, idMap)

	require.Len(t, out, 1)
	assert.Equal(t, graph.Edge{NodeID1: 2, NodeID2: 1, Reasoning: "x"}, out[0])
	assert.Equal(t, graph.EdgeKey{Lo: 1, Hi: 2}, out[0].Key())
}

func TestRewire_EmptyInput(t *testing.T) {
	out := Rewire(nil, identityMap(1))
	assert.Empty(t, out)
	assert.NotNil(t, out)
}
