package service

import (
	"context"

	"newsquiz/internal/domain"
	"newsquiz/internal/quizgen"

	"github.com/stretchr/testify/mock"
)

// --- MockArticleSource ---
type MockArticleSource struct {
	mock.Mock
}

func (m *MockArticleSource) FetchArticles(ctx context.Context, count int) ([]domain.Article, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

// --- MockScreener ---
type MockScreener struct {
	mock.Mock
}

func (m *MockScreener) Screen(ctx context.Context, articles []domain.Article) (*quizgen.ScreeningResult, error) {
	args := m.Called(ctx, articles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quizgen.ScreeningResult), args.Error(1)
}

// --- MockDrafter ---
type MockDrafter struct {
	mock.Mock
}

func (m *MockDrafter) Generate(ctx context.Context, screening string, attempt, maxAttempts int) (string, error) {
	args := m.Called(ctx, screening, attempt, maxAttempts)
	return args.String(0), args.Error(1)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) ListDates(ctx context.Context, category domain.Category) ([]string, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuizRepository) GetQuiz(ctx context.Context, category domain.Category, date string) (*domain.StoredQuiz, error) {
	args := m.Called(ctx, category, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredQuiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context) ([]*domain.StoredQuiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StoredQuiz), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, category domain.Category, date string, questions []domain.Question) (bool, error) {
	args := m.Called(ctx, category, date, questions)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuizRepository) DeleteQuiz(ctx context.Context, category domain.Category, date string) error {
	args := m.Called(ctx, category, date)
	return args.Error(0)
}
