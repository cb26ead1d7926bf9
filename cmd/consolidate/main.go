// Command consolidate runs one consolidation pass against the
// configured graph store and exits. Useful for cron jobs and local
// debugging without the API server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"topicmap-backend/infrastructure/config"
	"topicmap-backend/infrastructure/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Logger.Sync()

	g, err := container.Pipeline.Run(ctx)
	if err != nil {
		container.Logger.Fatal("Consolidation failed", zap.Error(err))
	}

	container.Logger.Info("Consolidation complete",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
}
