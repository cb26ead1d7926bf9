package oracle

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIOracle proposes topic groups using OpenAI's Responses API.
type OpenAIOracle struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIOracle creates an oracle backed by an OpenAI model.
func NewOpenAIOracle(apiKey, model string, logger *zap.Logger) *OpenAIOracle {
	if model == "" {
		model = defaultOpenAIModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIOracle{
		client: &client,
		model:  model,
		logger: logger,
	}
}

// ProposeGroups asks the model for merge groups over the topic list.
func (o *OpenAIOracle) ProposeGroups(ctx context.Context, topics []ports.Topic) ([]graph.Group, error) {
	result, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        shared.ResponsesModel(o.model),
		Instructions: openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(buildPrompt(topics)),
		},
	})
	if err != nil {
		return nil, appErrors.NewUpstreamError("clustering oracle", err)
	}

	content := result.OutputText()
	groups, err := parseGroups(content)
	if err != nil {
		o.logger.Warn("Oracle returned unparseable output",
			zap.String("model", o.model),
			zap.Int("responseLength", len(content)),
		)
		return nil, err
	}

	o.logger.Info("Oracle proposed groups",
		zap.String("model", o.model),
		zap.Int("topics", len(topics)),
		zap.Int("groups", len(groups)),
	)
	return groups, nil
}
