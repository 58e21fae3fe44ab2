package service

import (
	"context"
	"time"

	"newsquiz/internal/cache"
	"newsquiz/internal/domain"
	"newsquiz/internal/dto"
	"newsquiz/internal/validation"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	apiCacheService = "api"
	metaObject      = "meta"
	quizObject      = "quiz"
	listObject      = "all"
	listIdentifier  = "quizzes"
)

// QuizService defines the interface for the quiz read/write API
type QuizService interface {
	GetQuizMeta(ctx context.Context, gameType string) (*dto.QuizMetaResponse, error)
	GetQuiz(ctx context.Context, gameType, date string) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizListItem, error)
	SaveQuiz(ctx context.Context, req *dto.SaveQuizRequest) (*dto.SaveQuizResponse, error)
	DeleteQuiz(ctx context.Context, gameType, date string) (*dto.DeleteQuizResponse, error)

	// Evict drops cached reads touched by change events, including writes
	// made by other processes.
	Evict(ctx context.Context, events []domain.QuizEvent)
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	validator *validation.Validator
	reads     *gocache.Cache
	loads     singleflight.Group
	logger    *zap.Logger
}

// NewQuizService creates a new instance of quizService. A zero cacheTTL
// disables the read cache.
func NewQuizService(repo domain.QuizRepository, validator *validation.Validator, cacheTTL time.Duration, logger *zap.Logger) QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validator == nil {
		validator = validation.NewValidator()
	}
	s := &quizService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
	if cacheTTL > 0 {
		s.reads = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

// GetQuizMeta lists the stored dates of a game type, newest first.
func (s *quizService) GetQuizMeta(ctx context.Context, gameType string) (*dto.QuizMetaResponse, error) {
	if errs := s.validator.ValidateCategory(gameType); len(errs) > 0 {
		return nil, errs
	}

	v, err := s.load(metaKey(gameType), func() (interface{}, error) {
		dates, err := s.repo.ListDates(ctx, domain.Category(gameType))
		if err != nil {
			return nil, err
		}
		return &dto.QuizMetaResponse{
			Success:  true,
			GameType: gameType,
			Dates:    dates,
			Count:    len(dates),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.QuizMetaResponse), nil
}

// GetQuiz returns the quiz stored for a game type and date.
func (s *quizService) GetQuiz(ctx context.Context, gameType, date string) (*dto.QuizResponse, error) {
	if errs := s.validator.ValidateQuizKey(gameType, date); len(errs) > 0 {
		return nil, errs
	}

	v, err := s.load(quizKey(gameType, date), func() (interface{}, error) {
		quiz, err := s.repo.GetQuiz(ctx, domain.Category(gameType), date)
		if err != nil {
			return nil, err
		}
		return &dto.QuizResponse{
			Success:       true,
			GameType:      string(quiz.GameType),
			QuizDate:      quiz.QuizDate,
			Questions:     quiz.Questions,
			Data:          dto.QuestionList{Questions: quiz.Questions},
			QuestionCount: quiz.QuestionCount,
			UpdatedAt:     quiz.UpdatedAt,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.QuizResponse), nil
}

// ListQuizzes returns every stored quiz in the shape game pages consume.
func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizListItem, error) {
	v, err := s.load(listKey(), func() (interface{}, error) {
		quizzes, err := s.repo.ListQuizzes(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]dto.QuizListItem, 0, len(quizzes))
		for _, q := range quizzes {
			items = append(items, dto.QuizListItem{
				GameType:      string(q.GameType),
				QuizDate:      q.QuizDate,
				Data:          dto.QuestionList{Questions: q.Questions},
				QuestionCount: q.QuestionCount,
				UpdatedAt:     q.UpdatedAt,
			})
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.QuizListItem), nil
}

// SaveQuiz upserts the question list for a game type and date.
func (s *quizService) SaveQuiz(ctx context.Context, req *dto.SaveQuizRequest) (*dto.SaveQuizResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}

	date := req.ResolvedDate()
	payload, hasQuestions := req.ResolvedQuestions()
	if errs := s.validator.ValidateSaveRequest(req.GameType, date, hasQuestions, len(payload)); len(errs) > 0 {
		return nil, errs
	}

	questions := make([]domain.Question, len(payload))
	answered := make([]bool, len(payload))
	for i, p := range payload {
		questions[i] = domain.Question{
			Question:       p.Question,
			Options:        p.Options,
			Explanation:    p.Explanation,
			NewsLink:       p.NewsLink,
			RelatedArticle: p.RelatedArticle,
		}
		if p.CorrectAnswer != nil {
			questions[i].CorrectAnswer = *p.CorrectAnswer
			answered[i] = true
		}
	}
	if errs := s.validator.ValidateQuestions(questions, answered); len(errs) > 0 {
		return nil, errs
	}

	category := domain.Category(req.GameType)
	created, err := s.repo.SaveQuiz(ctx, category, date, questions)
	if err != nil {
		return nil, err
	}
	s.invalidate(req.GameType, date)

	message := "Quiz updated"
	if created {
		message = "Quiz created"
	}
	s.logger.Info("Quiz saved",
		zap.String("gameType", req.GameType),
		zap.String("quizDate", date),
		zap.Int("questions", len(questions)),
		zap.Bool("created", created),
	)

	return &dto.SaveQuizResponse{
		Success:       true,
		Message:       message,
		GameType:      req.GameType,
		QuizDate:      date,
		QuestionCount: len(questions),
		Created:       created,
	}, nil
}

// DeleteQuiz removes the quiz stored for a game type and date.
func (s *quizService) DeleteQuiz(ctx context.Context, gameType, date string) (*dto.DeleteQuizResponse, error) {
	if errs := s.validator.ValidateQuizKey(gameType, date); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.DeleteQuiz(ctx, domain.Category(gameType), date); err != nil {
		return nil, err
	}
	s.invalidate(gameType, date)

	s.logger.Info("Quiz deleted", zap.String("gameType", gameType), zap.String("quizDate", date))
	return &dto.DeleteQuizResponse{Success: true, Message: "Quiz deleted"}, nil
}

func (s *quizService) Evict(ctx context.Context, events []domain.QuizEvent) {
	for _, e := range events {
		s.invalidate(string(e.GameType), e.QuizDate)
	}
	if len(events) > 0 {
		s.logger.Debug("Evicted cached quiz reads", zap.Int("events", len(events)))
	}
}

// load serves key from the read cache, collapsing concurrent misses into one
// repository call. Errors are never cached.
func (s *quizService) load(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if v, ok := s.cached(key); ok {
		return v, nil
	}
	v, err, shared := s.loads.Do(key, func() (interface{}, error) {
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		s.store(key, v)
		return v, nil
	})
	if shared {
		s.logger.Debug("Shared in-flight quiz read", zap.String("key", key))
	}
	return v, err
}

func (s *quizService) cached(key string) (interface{}, bool) {
	if s.reads == nil {
		return nil, false
	}
	v, ok := s.reads.Get(key)
	if ok {
		s.logger.Debug("API cache hit", zap.String("key", key))
	}
	return v, ok
}

func (s *quizService) store(key string, v interface{}) {
	if s.reads == nil {
		return
	}
	s.reads.SetDefault(key, v)
}

func (s *quizService) invalidate(gameType, date string) {
	keys := []string{metaKey(gameType), quizKey(gameType, date), listKey()}
	for _, key := range keys {
		s.loads.Forget(key)
		if s.reads != nil {
			s.reads.Delete(key)
		}
	}
}

func metaKey(gameType string) string {
	return cache.GenerateCacheKey(apiCacheService, metaObject, gameType)
}

func quizKey(gameType, date string) string {
	return cache.GenerateCacheKey(apiCacheService, quizObject, gameType, date)
}

func listKey() string {
	return cache.GenerateCacheKey(apiCacheService, listObject, listIdentifier)
}
