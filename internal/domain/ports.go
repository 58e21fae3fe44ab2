package domain

import (
	"context"
	"time"
)

// ArticleSource fetches the batch of recent articles a run works from.
type ArticleSource interface {
	FetchArticles(ctx context.Context, count int) ([]Article, error)
}

// GenerationRequest is a single prompt pair sent to the generative text backend.
type GenerationRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// TextGenerator invokes a hosted language model and returns the raw text it produced.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// QuizRepository persists quizzes keyed by (category, date).
type QuizRepository interface {
	// ListDates returns the stored dates of a category, newest first.
	ListDates(ctx context.Context, category Category) ([]string, error)

	// GetQuiz returns the quiz for a category and date, or a NOT_FOUND DomainError.
	GetQuiz(ctx context.Context, category Category, date string) (*StoredQuiz, error)

	// ListQuizzes returns every stored quiz, grouped by category in
	// presentation order and newest first within a category.
	ListQuizzes(ctx context.Context) ([]*StoredQuiz, error)

	// SaveQuiz replaces the question list for a category and date.
	// created is true when no quiz existed for the key before.
	SaveQuiz(ctx context.Context, category Category, date string, questions []Question) (created bool, err error)

	// DeleteQuiz removes the quiz for a category and date.
	DeleteQuiz(ctx context.Context, category Category, date string) error
}

// Invalidator drops cached content-delivery paths.
type Invalidator interface {
	Invalidate(ctx context.Context, paths []string) (invalidationID string, err error)
}

// Notifier delivers a human-readable notification message.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// Clock returns the current time. Tests replace it to pin run dates.
type Clock func() time.Time
