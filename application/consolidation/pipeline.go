// Package consolidation orchestrates one full consolidation run:
// load, validate, cluster, merge, rewire, enrich, persist.
package consolidation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/consolidate"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

// Options bound the pipeline's external calls.
type Options struct {
	// OracleTimeout caps the clustering call.
	OracleTimeout time.Duration
	// PaperLimit caps results attached per node.
	PaperLimit int
}

// DefaultOptions returns the bounds used when none are configured.
func DefaultOptions() Options {
	return Options{
		OracleTimeout: 60 * time.Second,
		PaperLimit:    5,
	}
}

// Pipeline runs graph consolidation end to end. The run is not
// transactional: the single persistence write happens last, so a
// failure at any earlier step leaves the stored graph untouched and the
// run can simply be retried.
type Pipeline struct {
	store    ports.GraphStore
	oracle   ports.Oracle
	searcher ports.PaperSearcher
	opts     Options
	logger   *zap.Logger
}

// NewPipeline creates a consolidation pipeline.
func NewPipeline(store ports.GraphStore, oracle ports.Oracle, searcher ports.PaperSearcher, opts Options, logger *zap.Logger) *Pipeline {
	if opts.OracleTimeout <= 0 {
		opts.OracleTimeout = DefaultOptions().OracleTimeout
	}
	if opts.PaperLimit <= 0 {
		opts.PaperLimit = DefaultOptions().PaperLimit
	}
	return &Pipeline{
		store:    store,
		oracle:   oracle,
		searcher: searcher,
		opts:     opts,
		logger:   logger,
	}
}

// Run consolidates the persisted graph and returns the new snapshot.
func (p *Pipeline) Run(ctx context.Context) (*graph.Graph, error) {
	runID := uuid.New().String()[:8]
	log := p.logger.With(zap.String("runID", runID))
	started := time.Now()

	g, err := p.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			g = graph.Empty()
		} else {
			return nil, appErrors.Wrap(err, "consolidation aborted on load")
		}
	}
	g.Normalize()

	log.Info("Consolidation run started",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)

	groups, err := p.proposeGroups(ctx, g.Nodes)
	if err != nil {
		return nil, err
	}

	mergedNodes, idMap := consolidate.Merge(g.Nodes, groups)
	edges := consolidate.Rewire(g.Edges, idMap)
	reps := consolidate.RepresentativeIDs(idMap)

	log.Info("Merge complete",
		zap.Int("groupsProposed", len(groups)),
		zap.Int("nodesBefore", len(g.Nodes)),
		zap.Int("nodesAfter", len(mergedNodes)),
		zap.Int("edgesAfter", len(edges)),
	)

	p.attachPapers(ctx, mergedNodes, reps, log)

	result := &graph.Graph{Nodes: mergedNodes, Edges: edges}
	result.Normalize()

	if err := p.store.Save(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, "consolidation aborted on save")
	}

	log.Info("Consolidation run finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("nodes", len(result.Nodes)),
		zap.Int("edges", len(result.Edges)),
	)

	return result, nil
}

func (p *Pipeline) proposeGroups(ctx context.Context, nodes []graph.Node) ([]graph.Group, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	topics := make([]ports.Topic, len(nodes))
	for i, n := range nodes {
		topics[i] = ports.Topic{ID: n.ID, Title: n.Title, Relevance: n.Relevance}
	}

	oracleCtx, cancel := context.WithTimeout(ctx, p.opts.OracleTimeout)
	defer cancel()

	groups, err := p.oracle.ProposeGroups(oracleCtx, topics)
	if err != nil {
		if appErrors.IsAppError(err) {
			return nil, err
		}
		return nil, appErrors.NewUpstreamError("clustering oracle", err)
	}
	return groups, nil
}

// attachPapers resolves a lookup topic per node and queries the search
// chain. Misses and provider failures leave papers empty; they never
// fail the run.
func (p *Pipeline) attachPapers(ctx context.Context, nodes []graph.Node, reps map[int]bool, log *zap.Logger) {
	if p.searcher == nil {
		return
	}
	for i := range nodes {
		topic := lookupTopic(&nodes[i], reps)
		papers, err := p.searcher.Search(ctx, topic, p.opts.PaperLimit)
		if err != nil || papers == nil {
			papers = []string{}
		}
		nodes[i].Papers = papers
		if len(papers) == 0 {
			log.Debug("No papers found", zap.Int("nodeID", nodes[i].ID), zap.String("topic", topic))
		}
	}
}

// lookupTopic picks the search string: the group label for merge
// representatives (their title carries it), then the summary, then the
// title.
func lookupTopic(n *graph.Node, reps map[int]bool) string {
	if reps[n.ID] {
		return n.Title
	}
	if n.Summary != "" {
		return n.Summary
	}
	return n.Title
}
