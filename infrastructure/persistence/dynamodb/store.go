// Package dynamodb persists the graph blob as a single DynamoDB item.
package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

// Store implements ports.GraphStore on a single fixed item. The whole
// graph is overwritten on every save; there is no partial update.
type Store struct {
	client    *awsdynamodb.Client
	tableName string
	graphKey  string
	logger    *zap.Logger
}

// NewStore creates a DynamoDB-backed graph store.
func NewStore(client *awsdynamodb.Client, tableName, graphKey string, logger *zap.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		graphKey:  graphKey,
		logger:    logger,
	}
}

// graphItem is the DynamoDB item structure for the graph snapshot.
type graphItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Graph      string `dynamodbav:"Graph"`
	NodeCount  int    `dynamodbav:"NodeCount"`
	EdgeCount  int    `dynamodbav:"EdgeCount"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func (s *Store) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("GRAPH#%s", s.graphKey)},
		"SK": &types.AttributeValueMemberS{Value: "SNAPSHOT"},
	}
}

// Load reads and validates the stored blob. A corrupt blob fails
// closed with a schema error, never a coerced graph.
func (s *Store) Load(ctx context.Context) (*graph.Graph, error) {
	out, err := s.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(),
	})
	if err != nil {
		return nil, appErrors.NewTransportError("load graph", err)
	}
	if out.Item == nil {
		return nil, ports.ErrNotFound
	}

	var item graphItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, appErrors.NewTransportError("decode graph item", err)
	}

	g, err := graph.ValidateGraphPayload([]byte(item.Graph))
	if err != nil {
		s.logger.Error("Stored graph failed validation",
			zap.String("graphKey", s.graphKey),
			zap.Error(err),
		)
		return nil, err
	}
	return g, nil
}

// Save overwrites the graph item.
func (s *Store) Save(ctx context.Context, g *graph.Graph) error {
	blob, err := json.Marshal(g)
	if err != nil {
		return appErrors.NewTransportError("encode graph", err)
	}

	item := graphItem{
		PK:         fmt.Sprintf("GRAPH#%s", s.graphKey),
		SK:         "SNAPSHOT",
		EntityType: "GRAPH",
		Graph:      string(blob),
		NodeCount:  len(g.Nodes),
		EdgeCount:  len(g.Edges),
		UpdatedAt:  time.Now().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return appErrors.NewTransportError("marshal graph item", err)
	}

	if _, err := s.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		s.logger.Error("Failed to save graph",
			zap.String("graphKey", s.graphKey),
			zap.Error(err),
		)
		return appErrors.NewTransportError("save graph", err)
	}

	s.logger.Info("Graph saved",
		zap.String("graphKey", s.graphKey),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return nil
}
