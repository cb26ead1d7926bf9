package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeKey_CanonicalOrder(t *testing.T) {
	a := Edge{NodeID1: 7, NodeID2: 3}
	b := Edge{NodeID1: 3, NodeID2: 7}

	assert.Equal(t, EdgeKey{Lo: 3, Hi: 7}, a.Key())
	assert.Equal(t, a.Key(), b.Key())
}

func TestNormalize_FillsDefaults(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{ID: 1, Title: "Topic", Summary: ""},
			{ID: 2, Title: "Other", Summary: "kept", Papers: []string{"p"}},
		},
	}

	g.Normalize()

	assert.Equal(t, "Topic", g.Nodes[0].Summary)
	assert.Equal(t, []string{}, g.Nodes[0].Papers)
	assert.Equal(t, "kept", g.Nodes[1].Summary)
	assert.NotNil(t, g.Edges)
}

func TestNormalize_SerializesEmptySlices(t *testing.T) {
	g := Empty()
	g.Normalize()

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}

func TestClone_IsDeep(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: 1, Title: "A", Papers: []string{"p1"}}},
		Edges: []Edge{{NodeID1: 1, NodeID2: 2, Reasoning: "r"}},
	}

	c := g.Clone()
	c.Nodes[0].Papers[0] = "changed"
	c.Edges[0].Reasoning = "changed"

	assert.Equal(t, "p1", g.Nodes[0].Papers[0])
	assert.Equal(t, "r", g.Edges[0].Reasoning)
}

func TestStats(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: 1}, {ID: 2}},
		Edges: []Edge{{NodeID1: 1, NodeID2: 2}},
	}
	assert.Equal(t, Stats{NodeCount: 2, EdgeCount: 1}, g.Stats())
}
