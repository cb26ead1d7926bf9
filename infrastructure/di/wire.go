//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"topicmap-backend/application/consolidation"
	"topicmap-backend/application/ports"
	"topicmap-backend/application/services"
	"topicmap-backend/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        ports.GraphStore
	Oracle       ports.Oracle
	Searcher     ports.PaperSearcher
	Pipeline     *consolidation.Pipeline
	GraphService *services.GraphService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideGraphStore,
	ProvideOracle,
	ProvideSearcher,
	ProvidePipeline,
	ProvideGraphService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
