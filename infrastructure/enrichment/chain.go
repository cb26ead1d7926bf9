// Package enrichment attaches real paper titles to merged topics by
// querying public scholarly search APIs. Providers are tried in order
// and every failure mode degrades to the next provider; a topic with
// no papers found is normal, not an error.
package enrichment

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"topicmap-backend/application/ports"
)

// ChainOptions tunes per-provider behavior.
type ChainOptions struct {
	// Timeout bounds each individual provider call.
	Timeout time.Duration
}

// DefaultChainOptions returns the standard chain tuning.
func DefaultChainOptions() ChainOptions {
	return ChainOptions{Timeout: 10 * time.Second}
}

// Chain implements ports.PaperSearcher over an ordered list of
// providers, each guarded by its own circuit breaker so one flaky
// upstream cannot slow every search.
type Chain struct {
	providers []ports.PaperSearcher
	breakers  []*gobreaker.CircuitBreaker
	opts      ChainOptions
	logger    *zap.Logger
}

// NewChain wraps the providers in priority order.
func NewChain(logger *zap.Logger, opts ChainOptions, providers ...ports.PaperSearcher) *Chain {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultChainOptions().Timeout
	}
	breakers := make([]*gobreaker.CircuitBreaker, len(providers))
	for i, p := range providers {
		name := p.Name()
		breakers[i] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < 5 {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= 0.6
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Paper search breaker state changed",
					zap.String("provider", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}
	return &Chain{providers: providers, breakers: breakers, opts: opts, logger: logger}
}

// Name identifies the searcher in logs.
func (c *Chain) Name() string { return "chain" }

// Search queries each provider in turn and returns the first
// non-empty result. An exhausted chain returns an empty slice and
// nil error.
func (c *Chain) Search(ctx context.Context, topic string, limit int) ([]string, error) {
	for i, p := range c.providers {
		papers, err := c.searchOne(ctx, i, p, topic, limit)
		if err != nil {
			c.logger.Debug("Paper search provider failed",
				zap.String("provider", p.Name()),
				zap.String("topic", topic),
				zap.Error(err),
			)
			continue
		}
		if len(papers) > 0 {
			return papers, nil
		}
	}
	return []string{}, nil
}

func (c *Chain) searchOne(ctx context.Context, i int, p ports.PaperSearcher, topic string, limit int) ([]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	result, err := c.breakers[i].Execute(func() (any, error) {
		return p.Search(callCtx, topic, limit)
	})
	if err != nil {
		return nil, err
	}
	papers, _ := result.([]string)
	return papers, nil
}
