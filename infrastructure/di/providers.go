package di

import (
	"context"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"topicmap-backend/application/consolidation"
	"topicmap-backend/application/ports"
	"topicmap-backend/application/services"
	"topicmap-backend/infrastructure/config"
	"topicmap-backend/infrastructure/enrichment"
	"topicmap-backend/infrastructure/oracle"
	dynamostore "topicmap-backend/infrastructure/persistence/dynamodb"
	memorystore "topicmap-backend/infrastructure/persistence/memory"
	redisstore "topicmap-backend/infrastructure/persistence/redis"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideGraphStore selects the persistence backend from configuration.
func ProvideGraphStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.GraphStore, error) {
	switch cfg.StoreBackend {
	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.AWSRegion),
		)
		if err != nil {
			return nil, err
		}
		client := awsdynamodb.NewFromConfig(awsCfg)
		return dynamostore.NewStore(client, cfg.DynamoDBTable, cfg.GraphKey, logger), nil
	case "redis":
		return redisstore.NewStore(cfg.RedisAddr, cfg.GraphKey, logger)
	default:
		return memorystore.NewStore(), nil
	}
}

// ProvideOracle selects the clustering oracle from configuration.
func ProvideOracle(cfg *config.Config, logger *zap.Logger) ports.Oracle {
	if cfg.OracleProvider == "openai" {
		return oracle.NewOpenAIOracle(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	}
	return oracle.NewAnthropicOracle(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger)
}

// ProvideSearcher builds the paper search fallback chain.
func ProvideSearcher(cfg *config.Config, logger *zap.Logger) ports.PaperSearcher {
	httpClient := &http.Client{Timeout: cfg.SearchTimeout + 5*time.Second}
	return enrichment.NewChain(logger,
		enrichment.ChainOptions{Timeout: cfg.SearchTimeout},
		enrichment.NewOpenAlex(httpClient),
		enrichment.NewArXiv(httpClient),
		enrichment.NewCrossref(httpClient),
	)
}

// ProvidePipeline wires the consolidation pipeline.
func ProvidePipeline(store ports.GraphStore, oracle ports.Oracle, searcher ports.PaperSearcher, cfg *config.Config, logger *zap.Logger) *consolidation.Pipeline {
	return consolidation.NewPipeline(store, oracle, searcher, consolidation.Options{
		OracleTimeout: cfg.OracleTimeout,
		PaperLimit:    cfg.PaperLimit,
	}, logger)
}

// ProvideGraphService wires the read/replace service.
func ProvideGraphService(store ports.GraphStore, logger *zap.Logger) *services.GraphService {
	return services.NewGraphService(store, logger)
}
