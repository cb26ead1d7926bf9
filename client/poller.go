// Package client polls the server for graph snapshots and feeds them
// into a monotone local view.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"topicmap-backend/client/layout"
	"topicmap-backend/client/reconcile"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

// Options tunes polling behavior.
type Options struct {
	// Interval between snapshot fetches.
	Interval time.Duration
	// Center is where newly discovered nodes are seeded on screen.
	Center layout.Position
}

// Poller periodically fetches the graph and reconciles it into a
// local view, seeding layout positions for new nodes.
type Poller struct {
	baseURL    string
	httpClient *http.Client
	view       *reconcile.View
	positions  *layout.PositionStore
	interval   time.Duration
	logger     *zap.Logger

	mu       sync.RWMutex
	lastErr  error
	lastSync time.Time
}

// NewPoller creates a poller against the given server base URL.
func NewPoller(baseURL string, opts Options, logger *zap.Logger) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	return &Poller{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		view:       reconcile.NewView(),
		positions:  layout.NewPositionStore(opts.Center),
		interval:   opts.Interval,
		logger:     logger,
	}
}

// View exposes the reconciled graph view.
func (p *Poller) View() *reconcile.View { return p.view }

// Positions exposes the layout position store.
func (p *Poller) Positions() *layout.PositionStore { return p.positions }

// Run polls until the context is cancelled. An immediate fetch runs
// before the first tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.syncOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.syncOnce(ctx)
		}
	}
}

func (p *Poller) syncOnce(ctx context.Context) {
	g, err := p.fetchGraph(ctx)

	p.mu.Lock()
	p.lastErr = err
	if err == nil {
		p.lastSync = time.Now()
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("Graph sync failed", zap.Error(err))
		return
	}

	p.view.Apply(g)
	ids := make([]int, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	p.positions.Seed(ids)

	nodes, edges := p.view.Len()
	p.logger.Debug("Graph synced",
		zap.Int("snapshotNodes", len(g.Nodes)),
		zap.Int("viewNodes", nodes),
		zap.Int("viewEdges", edges),
	)
}

// ConsolidateNow asks the server to run consolidation and folds the
// result straight into the view.
func (p *Poller) ConsolidateNow(ctx context.Context) (*graph.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/api/v1/graph/consolidate", nil)
	if err != nil {
		return nil, appErrors.NewTransportError("build consolidate request", err)
	}

	g, err := p.doGraphRequest(req)
	if err != nil {
		return nil, err
	}

	p.view.Apply(g)
	ids := make([]int, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	p.positions.Seed(ids)
	return g, nil
}

// LastError returns the most recent sync error, nil after a
// successful sync.
func (p *Poller) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// LastSync returns when the view last absorbed a snapshot.
func (p *Poller) LastSync() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSync
}

func (p *Poller) fetchGraph(ctx context.Context) (*graph.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/api/v1/graph", nil)
	if err != nil {
		return nil, appErrors.NewTransportError("build graph request", err)
	}
	return p.doGraphRequest(req)
}

type graphEnvelope struct {
	Success bool         `json:"success"`
	Data    *graph.Graph `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Poller) doGraphRequest(req *http.Request) (*graph.Graph, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamError("graph server", err)
	}
	defer resp.Body.Close()

	var envelope graphEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, appErrors.NewUpstreamError("graph server", err)
	}
	if !envelope.Success || envelope.Data == nil {
		msg := "request failed"
		if envelope.Error != nil {
			msg = envelope.Error.Message
		}
		return nil, appErrors.NewUpstreamError("graph server",
			fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}
	return envelope.Data, nil
}
