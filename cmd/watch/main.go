// Command watch polls the API server and logs the reconciled view as
// it grows. It is the reference consumer for the polling client.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"topicmap-backend/client"
	"topicmap-backend/client/layout"
	"topicmap-backend/infrastructure/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	poller := client.NewPoller(cfg.ServerBaseURL, client.Options{
		Interval: cfg.PollInterval,
		Center:   layout.Position{X: 400, Y: 300},
	}, logger)

	logger.Info("Watching graph",
		zap.String("server", cfg.ServerBaseURL),
		zap.Duration("interval", cfg.PollInterval),
	)

	if err := poller.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal("Watcher stopped", zap.Error(err))
	}
}
