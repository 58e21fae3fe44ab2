package llm

import (
	"fmt"
	"net/http"

	"newsquiz/internal/config"
	"newsquiz/internal/domain"

	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
)

// NewGenerator builds the configured backend wrapped in transport retries.
func NewGenerator(cfg config.LLMConfig, logger *zap.Logger) (domain.TextGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var base domain.TextGenerator
	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		opts := []anthropic.Option{
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
			anthropic.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		model, err := anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic client: %w", err)
		}
		base = NewLangchainGenerator(model, ProviderAnthropic, logger)
	case ProviderOllama:
		opts := []ollama.Option{
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		base = NewLangchainGenerator(model, ProviderOllama, logger)
	case ProviderOpenAI:
		gen, err := NewOpenAIGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient, logger)
		if err != nil {
			return nil, err
		}
		base = gen
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}

	logger.Info("LLM backend initialized", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
	return NewRetryingGenerator(base, cfg.MaxAttempts, cfg.RetryBackoff, cfg.Timeout, logger), nil
}
