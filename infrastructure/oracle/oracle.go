// Package oracle asks an LLM which topics in the graph describe the
// same research subject. The model is a black box behind a strict
// JSON contract; anything that does not parse is an upstream failure,
// never a silent guess.
package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

const systemPrompt = `You are an expert research librarian who curates topic maps.
You are given a list of research topics, each with an integer id, a title, and a relevance score.
Identify groups of topics that describe the same underlying research subject and should be merged.

Respond with ONLY a JSON object of this exact shape, no prose before or after:
{
  "groups": [
    {
      "label": "canonical name for the merged topic",
      "memberIds": [1, 2],
      "summary": "one-sentence summary of the merged topic",
      "reasoning": "why these topics are the same subject"
    }
  ]
}

Rules:
- Only group topics that are genuinely the same subject, not merely related.
- Every memberIds entry must be an id from the input list.
- A group needs at least two members.
- If nothing should be merged, respond with {"groups": []}.`

// buildPrompt renders the topic list the model sees.
func buildPrompt(topics []ports.Topic) string {
	var sb strings.Builder
	sb.WriteString("Topics:\n")
	for _, t := range topics {
		fmt.Fprintf(&sb, "- id=%d relevance=%.2f title=%q\n", t.ID, t.Relevance, t.Title)
	}
	return sb.String()
}

type groupsResponse struct {
	Groups []graph.Group `json:"groups"`
}

// parseGroups extracts the group proposals from raw model output.
// Models sometimes wrap JSON in markdown fences despite instructions,
// so those are stripped before decoding.
func parseGroups(raw string) ([]graph.Group, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var resp groupsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, appErrors.NewUpstreamError("clustering oracle",
			fmt.Errorf("response is not valid group JSON: %w", err))
	}
	if resp.Groups == nil {
		resp.Groups = []graph.Group{}
	}
	return resp.Groups, nil
}
