// Package redis persists the graph blob under a single Redis key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

// Store implements ports.GraphStore on a single Redis string value.
type Store struct {
	client   *goredis.Client
	graphKey string
	logger   *zap.Logger
}

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(addr, graphKey string, logger *zap.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, appErrors.NewTransportError("connect to redis", err)
	}

	return &Store{
		client:   client,
		graphKey: fmt.Sprintf("graph:%s", graphKey),
		logger:   logger,
	}, nil
}

// Load reads and validates the stored blob. A corrupt blob fails
// closed with a schema error, never a coerced graph.
func (s *Store) Load(ctx context.Context) (*graph.Graph, error) {
	blob, err := s.client.Get(ctx, s.graphKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, appErrors.NewTransportError("load graph", err)
	}

	g, err := graph.ValidateGraphPayload(blob)
	if err != nil {
		s.logger.Error("Stored graph failed validation",
			zap.String("key", s.graphKey),
			zap.Error(err),
		)
		return nil, err
	}
	return g, nil
}

// Save overwrites the graph key. No TTL; the snapshot is durable
// until the next save.
func (s *Store) Save(ctx context.Context, g *graph.Graph) error {
	blob, err := json.Marshal(g)
	if err != nil {
		return appErrors.NewTransportError("encode graph", err)
	}
	if err := s.client.Set(ctx, s.graphKey, blob, 0).Err(); err != nil {
		return appErrors.NewTransportError("save graph", err)
	}
	s.logger.Info("Graph saved",
		zap.String("key", s.graphKey),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
