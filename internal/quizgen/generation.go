package quizgen

import (
	"context"
	"fmt"
	"strings"

	"newsquiz/internal/domain"
	"newsquiz/internal/prompt"

	"go.uber.org/zap"
)

// Generator drafts the quiz questions from the screening output.
type Generator struct {
	prompts   *prompt.Loader
	generator domain.TextGenerator
	params    GenerationParams
	logger    *zap.Logger
}

func NewGenerator(prompts *prompt.Loader, generator domain.TextGenerator, params GenerationParams, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{prompts: prompts, generator: generator, params: params, logger: logger}
}

// Generate runs the generation prompt once. attempt is 1-based and only used for logging.
func (g *Generator) Generate(ctx context.Context, screening string, attempt, maxAttempts int) (string, error) {
	g.logger.Info("Generating questions", zap.Int("attempt", attempt), zap.Int("max_attempts", maxAttempts))

	stage, err := g.prompts.Load(prompt.StageGeneration)
	if err != nil {
		return "", domain.NewInternalError("failed to load generation prompts", err)
	}

	text, err := g.generator.Generate(ctx, domain.GenerationRequest{
		System:      stage.SystemPrompt(),
		User:        g.userPrompt(stage.Memory, screening),
		MaxTokens:   g.params.MaxTokens,
		Temperature: g.params.Temperature,
		TopP:        g.params.TopP,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *Generator) userPrompt(memory, screening string) string {
	labels := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		labels = append(labels, c.Label()+" 2개")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n", memory)
	b.WriteString("다음은 1단계 스크리닝 결과입니다.\n\n")
	b.WriteString(screening)
	b.WriteString("\n\n위 스크리닝 결과에서 추천된 기사들을 사용하여 총 6개 문제를 제작하세요.\n")
	fmt.Fprintf(&b, "(%s)\n", strings.Join(labels, ", "))
	return b.String()
}
