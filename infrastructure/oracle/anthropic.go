package oracle

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"topicmap-backend/application/ports"
	"topicmap-backend/domain/graph"
	appErrors "topicmap-backend/pkg/errors"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250901"

// AnthropicOracle proposes topic groups using Anthropic's Messages API.
type AnthropicOracle struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicOracle creates an oracle backed by Claude.
func NewAnthropicOracle(apiKey, model string, logger *zap.Logger) *AnthropicOracle {
	if model == "" {
		model = defaultAnthropicModel
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicOracle{
		client: &client,
		model:  model,
		logger: logger,
	}
}

// ProposeGroups asks the model for merge groups over the topic list.
func (o *AnthropicOracle) ProposeGroups(ctx context.Context, topics []ports.Topic) ([]graph.Group, error) {
	msg, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(o.model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(topics))),
		},
	})
	if err != nil {
		return nil, appErrors.NewUpstreamError("clustering oracle", err)
	}

	var content string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += tb.Text
		}
	}

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
