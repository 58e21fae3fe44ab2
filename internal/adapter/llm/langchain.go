package llm

import (
	"context"
	"fmt"

	"newsquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// LangchainGenerator sends prompt pairs through any langchaingo model.
type LangchainGenerator struct {
	model  llms.Model
	name   string
	logger *zap.Logger
}

func NewLangchainGenerator(model llms.Model, name string, logger *zap.Logger) *LangchainGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LangchainGenerator{model: model, name: name, logger: logger}
}

func (g *LangchainGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, req.System),
		llms.TextParts(schema.ChatMessageTypeHuman, req.User),
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature), llms.WithTopP(req.TopP)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := g.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		g.logger.Error("LLM request failed", zap.String("provider", g.name), zap.Error(err))
		return "", domain.NewUpstreamError(fmt.Sprintf("%s request failed", g.name), err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewUpstreamError(fmt.Sprintf("%s returned no choices", g.name), nil)
	}

	text := resp.Choices[0].Content
	g.logger.Debug("LLM response received", zap.String("provider", g.name), zap.Int("length", len(text)))
	return text, nil
}

var _ domain.TextGenerator = (*LangchainGenerator)(nil)
