package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"newsquiz/internal/domain"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// RetryingGenerator retries transport failures of the wrapped generator.
// It knows nothing about quiz validation; that retry lives in the pipeline.
type RetryingGenerator struct {
	next     domain.TextGenerator
	attempts int
	backoff  time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRetryingGenerator wraps next. timeout bounds each attempt; zero means no per-attempt bound.
func NewRetryingGenerator(next domain.TextGenerator, attempts int, backoff, timeout time.Duration, logger *zap.Logger) *RetryingGenerator {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingGenerator{next: next, attempts: attempts, backoff: backoff, timeout: timeout, logger: logger}
}

func (g *RetryingGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		text, err := g.once(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if isClientError(err) {
			g.logger.Error("LLM call rejected, not retrying", zap.Int("attempt", attempt), zap.Error(err))
			break
		}
		if attempt == g.attempts {
			break
		}

		g.logger.Warn("LLM call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.attempts),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return "", domain.NewUpstreamError("llm call cancelled", ctx.Err())
		case <-time.After(g.backoff * time.Duration(attempt)):
		}
	}

	if domain.HasCode(lastErr, domain.CodeUpstream) {
		return "", lastErr
	}
	return "", domain.NewUpstreamError("llm call failed", lastErr)
}

// isClientError reports a 4xx rejection other than rate limiting. Repeating
// such a request cannot succeed.
func isClientError(err error) bool {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return false
	}
	return status >= 400 && status < 500 && status != http.StatusTooManyRequests
}

func (g *RetryingGenerator) once(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if g.timeout <= 0 {
		return g.next.Generate(ctx, req)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Generate(attemptCtx, req)
}

var _ domain.TextGenerator = (*RetryingGenerator)(nil)
