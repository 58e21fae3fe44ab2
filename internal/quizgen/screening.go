package quizgen

import (
	"context"
	"fmt"
	"strings"

	"newsquiz/internal/domain"
	"newsquiz/internal/prompt"

	"go.uber.org/zap"
)

// GenerationParams are the sampling settings shared by both model stages.
type GenerationParams struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// ScreeningResult is the output of the screening stage.
type ScreeningResult struct {
	Text  string
	Index *TitleIndex
}

// Screener asks the model to pick the articles worth quizzing on.
type Screener struct {
	prompts     *prompt.Loader
	generator   domain.TextGenerator
	params      GenerationParams
	bodyExcerpt int
	logger      *zap.Logger
}

func NewScreener(prompts *prompt.Loader, generator domain.TextGenerator, params GenerationParams, bodyExcerpt int, logger *zap.Logger) *Screener {
	if bodyExcerpt <= 0 {
		bodyExcerpt = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{
		prompts:     prompts,
		generator:   generator,
		params:      params,
		bodyExcerpt: bodyExcerpt,
		logger:      logger,
	}
}

// Screen builds the title index for the batch and runs the screening prompt over it.
func (s *Screener) Screen(ctx context.Context, articles []domain.Article) (*ScreeningResult, error) {
	index := NewTitleIndex(articles)
	s.logger.Info("Built title index", zap.Int("titles", index.Len()))

	stage, err := s.prompts.Load(prompt.StageScreening)
	if err != nil {
		return nil, domain.NewInternalError("failed to load screening prompts", err)
	}

	text, err := s.generator.Generate(ctx, domain.GenerationRequest{
		System:      stage.SystemPrompt(),
		User:        s.userPrompt(stage.Memory, articles),
		MaxTokens:   s.params.MaxTokens,
		Temperature: s.params.Temperature,
		TopP:        s.params.TopP,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Screening completed", zap.Int("articles", len(articles)), zap.Int("response_length", len(text)))
	return &ScreeningResult{Text: text, Index: index}, nil
}

func (s *Screener) userPrompt(memory string, articles []domain.Article) string {
	var listing strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&listing, "\n\n[기사 %d]\n", i+1)
		fmt.Fprintf(&listing, "제목: %s\n", a.Title)
		fmt.Fprintf(&listing, "본문: %s...\n", prefix(a.Body, s.bodyExcerpt))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n", memory)
	fmt.Fprintf(&b, "다음 %d개의 경제 뉴스 기사를 분석하여 게임별로 적합한 기사를 추천해주세요.\n\n", len(articles))
	b.WriteString("**중요: 각 게임별로 반드시 2개씩, 총 6개 기사를 선정해야 합니다.**\n")
	for _, c := range domain.Categories {
		fmt.Fprintf(&b, "- %s 게임: 2개\n", c.Label())
	}
	b.WriteString(listing.String())
	b.WriteString("\n\n분석 시작\n")
	return b.String()
}
