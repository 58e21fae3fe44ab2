package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsquiz/internal/domain"
	"newsquiz/internal/quizgen"
	"newsquiz/internal/util"
	"newsquiz/internal/validation"

	"go.uber.org/zap"
)

// ArticleScreener selects articles and builds the run's title index.
type ArticleScreener interface {
	Screen(ctx context.Context, articles []domain.Article) (*quizgen.ScreeningResult, error)
}

// QuestionDrafter produces one fixed-layout draft of the quiz.
type QuestionDrafter interface {
	Generate(ctx context.Context, screening string, attempt, maxAttempts int) (string, error)
}

// QuizParser turns a draft into structured questions. It never fails.
type QuizParser interface {
	Parse(text string, index *quizgen.TitleIndex) domain.QuizResult
}

// RunReport is the structured outcome of one pipeline run.
type RunReport struct {
	RunID     string         `json:"-"`
	Message   string         `json:"message,omitempty"`
	Date      string         `json:"date,omitempty"`
	Attempts  int            `json:"attempts,omitempty"`
	Questions map[string]int `json:"questions,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// PipelineOptions tunes a pipeline run.
type PipelineOptions struct {
	ArticleCount int
	MaxRetries   int
	Location     *time.Location
}

// PipelineService generates, validates and stores the daily quiz.
type PipelineService interface {
	Run(ctx context.Context) (*RunReport, error)
}

type pipelineService struct {
	source    domain.ArticleSource
	screener  ArticleScreener
	drafter   QuestionDrafter
	parser    QuizParser
	validator *validation.Validator
	repo      domain.QuizRepository
	opts      PipelineOptions
	now       domain.Clock
	logger    *zap.Logger
}

// NewPipelineService creates a new instance of pipelineService.
func NewPipelineService(
	source domain.ArticleSource,
	screener ArticleScreener,
	drafter QuestionDrafter,
	parser QuizParser,
	validator *validation.Validator,
	repo domain.QuizRepository,
	opts PipelineOptions,
	clock domain.Clock,
	logger *zap.Logger,
) PipelineService {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pipelineService{
		source:    source,
		screener:  screener,
		drafter:   drafter,
		parser:    parser,
		validator: validator,
		repo:      repo,
		opts:      opts,
		now:       clock,
		logger:    logger,
	}
}

// Run executes fetch, screen, the bounded generate/parse/validate loop and persist.
// On failure the returned report carries only the error message.
func (s *pipelineService) Run(ctx context.Context) (*RunReport, error) {
	runID := util.NewULID()
	log := s.logger.With(zap.String("run_id", runID))
	date := s.now().In(s.opts.Location).Format(validation.DateLayout)
	log.Info("Starting quiz generation run", zap.String("date", date))

	articles, err := s.source.FetchArticles(ctx, s.opts.ArticleCount)
	if err != nil {
		return s.fail(log, runID, "fetch", err)
	}
	if len(articles) == 0 {
		log.Warn("Article source returned no articles")
	}

	screening, err := s.screener.Screen(ctx, articles)
	if err != nil {
		return s.fail(log, runID, "screen", err)
	}

	result, attempts, err := s.generateValidQuiz(ctx, log, screening)
	if err != nil {
		return s.fail(log, runID, "generate", err)
	}

	for _, c := range domain.Categories {
		if _, err := s.repo.SaveQuiz(ctx, c, date, result[c]); err != nil {
			return s.fail(log, runID, "persist", err)
		}
	}

	log.Info("Quiz generation run completed",
		zap.String("date", date),
		zap.Int("attempts", attempts),
		zap.Any("questions", result.Counts()),
	)
	return &RunReport{
		RunID:     runID,
		Message:   "quiz generation completed",
		Date:      date,
		Attempts:  attempts,
		Questions: result.Counts(),
	}, nil
}

// generateValidQuiz regenerates from scratch until a draft passes validation
// or the attempts run out.
func (s *pipelineService) generateValidQuiz(ctx context.Context, log *zap.Logger, screening *quizgen.ScreeningResult) (domain.QuizResult, int, error) {
	maxAttempts := s.opts.MaxRetries + 1
	var lastErrors []string
	var allErrors []string

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := s.drafter.Generate(ctx, screening.Text, attempt, maxAttempts)
		if err != nil {
			return nil, attempt, err
		}

		result := s.parser.Parse(text, screening.Index)
		report := s.validator.ValidateQuiz(result)
		for _, w := range report.Warnings {
			log.Warn("Quiz validation warning", zap.Int("attempt", attempt), zap.String("warning", w))
		}

		if report.Accepted() {
			log.Info("Quiz passed validation", zap.Int("attempt", attempt))
			return result, attempt, nil
		}

		lastErrors = report.Errors
		for _, e := range report.Errors {
			allErrors = append(allErrors, fmt.Sprintf("attempt %d: %s", attempt, e))
		}
		log.Warn("Quiz failed validation",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Strings("errors", report.Errors),
		)
	}

	return nil, maxAttempts, domain.NewValidationFailedError(maxAttempts, lastErrors).
		WithContext("attempt_errors", allErrors)
}

func (s *pipelineService) fail(log *zap.Logger, runID, stage string, err error) (*RunReport, error) {
	log.Error("Quiz generation run failed", zap.String("stage", stage), zap.Error(err))

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		err = domain.NewInternalError(fmt.Sprintf("%s failed", stage), err)
	}
	return &RunReport{RunID: runID, Error: err.Error()}, err
}
