package llm

import (
	"context"
	"fmt"
	"net/http"

	"newsquiz/internal/domain"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIGenerator talks to OpenAI or any server speaking its chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIGenerator(apiKey, baseURL, model string, httpClient *http.Client, logger *zap.Logger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
	})
	if err != nil {
		g.logger.Error("OpenAI request failed", zap.String("model", g.model), zap.Error(err))
		return "", domain.NewUpstreamError("openai request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewUpstreamError("openai returned no choices", nil)
	}

	g.logger.Debug("OpenAI response received", zap.Int("total_tokens", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}

var _ domain.TextGenerator = (*OpenAIGenerator)(nil)
