package graph

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	appErrors "topicmap-backend/pkg/errors"
)

// validate is shared; the validator is safe for concurrent use.
var validate = validator.New()

// Pointer fields distinguish an absent key from a zero value, so the
// gate fails closed on structurally incomplete payloads instead of
// coercing them.
type nodePayload struct {
	ID        *float64  `json:"id" validate:"required"`
	Title     *string   `json:"title" validate:"required"`
	Summary   *string   `json:"summary"`
	Papers    *[]string `json:"papers" validate:"required"`
	Relevance *float64  `json:"relevance" validate:"required"`
}

type edgePayload struct {
	NodeID1   *float64 `json:"nodeID1" validate:"required"`
	NodeID2   *float64 `json:"nodeID2" validate:"required"`
	Reasoning *string  `json:"reasoning" validate:"required"`
}

type graphPayload struct {
	Nodes *[]nodePayload `json:"nodes" validate:"required,dive"`
	Edges *[]edgePayload `json:"edges" validate:"required,dive"`
}

// ValidateGraphPayload checks an arbitrary JSON payload against the
// graph schema and returns the typed graph. It gates incoming writes and
// rejects corrupted persisted blobs on read: an invalid payload is an
// error, never silently coerced.
func ValidateGraphPayload(data []byte) (*Graph, error) {
	var payload graphPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, appErrors.NewSchemaError("payload is not a graph object").WithCause(err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, appErrors.NewSchemaError("graph payload failed validation").WithCause(err)
	}

	g := &Graph{
		Nodes: make([]Node, 0, len(*payload.Nodes)),
		Edges: make([]Edge, 0, len(*payload.Edges)),
	}
	for _, n := range *payload.Nodes {
		node := Node{
			ID:        int(*n.ID),
			Title:     *n.Title,
			Papers:    *n.Papers,
			Relevance: *n.Relevance,
		}
		if n.Summary != nil {
			node.Summary = *n.Summary
		}
		g.Nodes = append(g.Nodes, node)
	}
	for _, e := range *payload.Edges {
		g.Edges = append(g.Edges, Edge{
			NodeID1:   int(*e.NodeID1),
			NodeID2:   int(*e.NodeID2),
			Reasoning: *e.Reasoning,
		})
	}
	return g, nil
}
