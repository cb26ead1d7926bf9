package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topicmap-backend/application/consolidation"
	"topicmap-backend/application/ports"
	"topicmap-backend/application/services"
	"topicmap-backend/domain/graph"
	"topicmap-backend/infrastructure/persistence/memory"
)

type stubOracle struct {
	groups []graph.Group
}

func (o *stubOracle) ProposeGroups(ctx context.Context, topics []ports.Topic) ([]graph.Group, error) {
	return o.groups, nil
}

func newTestServer(t *testing.T, oracle ports.Oracle) (*httptest.Server, ports.GraphStore) {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	pipeline := consolidation.NewPipeline(store, oracle, nil, consolidation.Options{}, logger)
	router := NewRouter(services.NewGraphService(store, logger), pipeline, false, logger)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestRouter_GetGraphBeforeAnySave(t *testing.T) {
	srv, _ := newTestServer(t, &stubOracle{})

	resp, err := http.Get(srv.URL + "/api/v1/graph")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(env.Data))
}

func TestRouter_ReplaceThenGet(t *testing.T) {
	srv, _ := newTestServer(t, &stubOracle{})
	payload := `{
		"nodes":[{"id":1,"title":"GNN","papers":[],"relevance":0.9}],
		"edges":[]
	}`

	resp, err := http.Post(srv.URL+"/api/v1/graph", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/graph")
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)

	var g graph.Graph
	require.NoError(t, json.Unmarshal(env.Data, &g))
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "GNN", g.Nodes[0].Title)
	// Normalization backfilled the summary.
	assert.Equal(t, "GNN", g.Nodes[0].Summary)
}

func TestRouter_ReplaceRejectsInvalidPayload(t *testing.T) {
	srv, store := newTestServer(t, &stubOracle{})

	resp, err := http.Post(srv.URL+"/api/v1/graph", "application/json",
		strings.NewReader(`{"nodes":[{"id":1}],"edges":[]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SCHEMA", env.Error.Code)

	// The rejected payload never reached the store.
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRouter_ConsolidateMergesGraph(t *testing.T) {
	oracle := &stubOracle{groups: []graph.Group{
		{Label: "Graph Learning", Summary: "s", MemberIDs: []int{1, 2}},
	}}
	srv, _ := newTestServer(t, oracle)

	payload := `{
		"nodes":[
			{"id":1,"title":"GNN","papers":[],"relevance":0.9},
			{"id":2,"title":"GCN","papers":[],"relevance":0.5}
		],
		"edges":[{"nodeID1":1,"nodeID2":2,"reasoning":"similar"}]
	}`
	resp, err := http.Post(srv.URL+"/api/v1/graph", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/v1/graph/consolidate", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var g graph.Graph
	require.NoError(t, json.Unmarshal(env.Data, &g))
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Graph Learning", g.Nodes[0].Title)
	assert.Empty(t, g.Edges)
}

func TestRouter_Stats(t *testing.T) {
	srv, store := newTestServer(t, &stubOracle{})
	require.NoError(t, store.Save(context.Background(), &graph.Graph{
		Nodes: []graph.Node{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
		Edges: []graph.Edge{{NodeID1: 1, NodeID2: 2, Reasoning: "r"}},
	}))

	resp, err := http.Get(srv.URL + "/api/v1/graph/stats")
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.JSONEq(t, `{"nodeCount":2,"edgeCount":1}`, string(env.Data))
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t, &stubOracle{})

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}
