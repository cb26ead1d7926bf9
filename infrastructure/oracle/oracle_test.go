package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

func TestParseGroups_PlainJSON(t *testing.T) {
	raw := `{"groups":[{"label":"Graph Learning","memberIds":[1,2],"summary":"s","reasoning":"r"}]}`

	groups, err := parseGroups(raw)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, graph.Group{
		Label:     "Graph Learning",
		MemberIDs: []int{1, 2},
		Summary:   "s",
		Reasoning: "r",
	}, groups[0])
}

func TestParseGroups_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"groups\":[{\"label\":\"L\",\"memberIds\":[3,4],\"summary\":\"s\"}]}\n```"

	groups, err := parseGroups(raw)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []int{3, 4}, groups[0].MemberIDs)
}

func TestParseGroups_EmptyGroups(t *testing.T) {
	groups, err := parseGroups(`{"groups":[]}`)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestParseGroups_MissingGroupsKey(t *testing.T) {
	groups, err := parseGroups(`{}`)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestParseGroups_InvalidJSONIsUpstreamError(t *testing.T) {
	cases := []string{
		"I think nodes 1 and 2 should merge.",
		`{"groups": "not a list"}`,
		"",
	}
	for _, raw := range cases {
		groups, err := parseGroups(raw)
		assert.Nil(t, groups)
		require.Error(t, err)
		assert.True(t, appErrors.IsUpstream(err))
	}
}

func TestBuildPrompt_ListsEveryTopic(t *testing.T) {
	topics := []ports.Topic{
		{ID: 1, Title: "GNN", Relevance: 0.9},
		{ID: 2, Title: "GCN", Relevance: 0.5},
	}

	prompt := buildPrompt(topics)

	assert.Contains(t, prompt, `id=1 relevance=0.90 title="GNN"`)
	assert.Contains(t, prompt, `id=2 relevance=0.50 title="GCN"`)
}
