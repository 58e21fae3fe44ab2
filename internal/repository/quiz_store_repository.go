package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"newsquiz/internal/cache"
	"newsquiz/internal/domain"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// quizStoreRepository keeps quizzes in a key-value store: one JSON value per
// (game type, date) plus a sorted set of dates per game type.
type quizStoreRepository struct {
	store   domain.KeyValueStore
	channel string
	now     domain.Clock
	logger  *zap.Logger
}

// NewQuizStoreRepository creates a repository over store. Change events are
// published on channel; an empty channel disables them.
func NewQuizStoreRepository(store domain.KeyValueStore, channel string, clock domain.Clock, logger *zap.Logger) domain.QuizRepository {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &quizStoreRepository{store: store, channel: channel, now: clock, logger: logger}
}

func (r *quizStoreRepository) ListDates(ctx context.Context, category domain.Category) ([]string, error) {
	dates, err := r.store.ZRevRange(ctx, cache.QuizDatesKey(category.String()))
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list quiz dates", err)
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func (r *quizStoreRepository) GetQuiz(ctx context.Context, category domain.Category, date string) (*domain.StoredQuiz, error) {
	raw, err := r.store.Get(ctx, cache.QuizKey(category.String(), date))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("quiz not found: %s %s", category, date))
		}
		return nil, domain.NewPersistenceError("failed to read quiz", err)
	}

	var quiz domain.StoredQuiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return nil, domain.NewPersistenceError("failed to decode stored quiz", err)
	}
	return &quiz, nil
}

// ListQuizzes walks the date index of every category. A date whose value has
// vanished between the index read and the value read is skipped.
func (r *quizStoreRepository) ListQuizzes(ctx context.Context) ([]*domain.StoredQuiz, error) {
	quizzes := []*domain.StoredQuiz{}
	for _, c := range domain.Categories {
		dates, err := r.ListDates(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, date := range dates {
			quiz, err := r.GetQuiz(ctx, c, date)
			if domain.HasCode(err, domain.CodeNotFound) {
				r.logger.Warn("Indexed quiz is missing", zap.String("game_type", c.String()), zap.String("quiz_date", date))
				continue
			}
			if err != nil {
				return nil, err
			}
			quizzes = append(quizzes, quiz)
		}
	}
	return quizzes, nil
}

func (r *quizStoreRepository) SaveQuiz(ctx context.Context, category domain.Category, date string, questions []domain.Question) (bool, error) {
	score, err := dateScore(date)
	if err != nil {
		return false, domain.NewInvalidInputError(fmt.Sprintf("invalid quiz date: %s", date))
	}

	now := r.now().UTC()
	createdAt := now
	created := true

	existing, err := r.GetQuiz(ctx, category, date)
	switch {
	case err == nil:
		created = false
		createdAt = existing.CreatedAt
	case !domain.HasCode(err, domain.CodeNotFound):
		return false, err
	}

	if questions == nil {
		questions = []domain.Question{}
	}
	quiz := domain.StoredQuiz{
		GameType:      category,
		QuizDate:      date,
		Questions:     questions,
		QuestionCount: len(questions),
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}
	payload, err := json.Marshal(quiz)
	if err != nil {
		return false, domain.NewInternalError("failed to encode quiz", err)
	}

	if err := r.store.Set(ctx, cache.QuizKey(category.String(), date), string(payload), 0); err != nil {
		return false, domain.NewPersistenceError("failed to write quiz", err)
	}
	if err := r.store.ZAdd(ctx, cache.QuizDatesKey(category.String()), score, date); err != nil {
		return false, domain.NewPersistenceError("failed to index quiz date", err)
	}

	r.logger.Info("Quiz saved",
		zap.String("game_type", category.String()),
		zap.String("quiz_date", date),
		zap.Int("question_count", len(questions)),
		zap.Bool("created", created),
	)
	r.publish(ctx, domain.QuizEvent{GameType: category, QuizDate: date, Event: domain.QuizEventUpsert})
	return created, nil
}

func (r *quizStoreRepository) DeleteQuiz(ctx context.Context, category domain.Category, date string) error {
	if _, err := r.GetQuiz(ctx, category, date); err != nil {
		return err
	}

	if err := r.store.Delete(ctx, cache.QuizKey(category.String(), date)); err != nil {
		return domain.NewPersistenceError("failed to delete quiz", err)
	}
	if err := r.store.ZRem(ctx, cache.QuizDatesKey(category.String()), date); err != nil {
		return domain.NewPersistenceError("failed to unindex quiz date", err)
	}

	r.logger.Info("Quiz deleted", zap.String("game_type", category.String()), zap.String("quiz_date", date))
	r.publish(ctx, domain.QuizEvent{GameType: category, QuizDate: date, Event: domain.QuizEventRemove})
	return nil
}

// publish is best effort: the quiz is already stored when it runs.
func (r *quizStoreRepository) publish(ctx context.Context, event domain.QuizEvent) {
	if r.channel == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to encode quiz event", zap.Error(err))
		return
	}
	if err := r.store.Publish(ctx, r.channel, string(payload)); err != nil {
		r.logger.Error("Failed to publish quiz event",
			zap.String("channel", r.channel),
			zap.String("event", string(event.Event)),
			zap.Error(err),
		)
	}
}

// dateScore orders dates in the sorted set as YYYYMMDD.
func dateScore(date string) (float64, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, err
	}
	return float64(t.Year()*10000 + int(t.Month())*100 + t.Day()), nil
}
