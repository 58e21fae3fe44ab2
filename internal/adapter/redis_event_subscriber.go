package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"newsquiz/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// QuizEventHandler receives one batch of change events.
type QuizEventHandler func(ctx context.Context, events []domain.QuizEvent)

// RedisEventSubscriber listens for quiz change events on a Redis channel and
// hands them over in batches, so one generation run yields a single batch.
type RedisEventSubscriber struct {
	client  *redis.Client
	channel string
	window  time.Duration
	logger  *zap.Logger
}

func NewRedisEventSubscriber(client *redis.Client, channel string, window time.Duration, logger *zap.Logger) *RedisEventSubscriber {
	if window <= 0 {
		window = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisEventSubscriber{client: client, channel: channel, window: window, logger: logger}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (s *RedisEventSubscriber) Run(ctx context.Context, handle QuizEventHandler) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}
	s.logger.Info("Subscribed to quiz events", zap.String("channel", s.channel), zap.Duration("window", s.window))

	payloads := make(chan string)
	go func() {
		defer close(payloads)
		for msg := range pubsub.Channel() {
			select {
			case payloads <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	collectBatches(ctx, payloads, s.window, s.logger, handle)
	return ctx.Err()
}

// DecodeQuizEvent parses a published event payload.
func DecodeQuizEvent(raw string) (domain.QuizEvent, error) {
	var event domain.QuizEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return domain.QuizEvent{}, fmt.Errorf("invalid quiz event: %w", err)
	}
	if event.GameType == "" || event.QuizDate == "" || event.Event == "" {
		return domain.QuizEvent{}, fmt.Errorf("incomplete quiz event: %s", raw)
	}
	return event, nil
}

// collectBatches groups payloads arriving within window of the first one of
// a batch. Pending events are flushed when in closes.
func collectBatches(ctx context.Context, in <-chan string, window time.Duration, logger *zap.Logger, handle QuizEventHandler) {
	var (
		pending []domain.QuizEvent
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-in:
			if !ok {
				if len(pending) > 0 {
					handle(ctx, pending)
				}
				return
			}
			event, err := DecodeQuizEvent(raw)
			if err != nil {
				logger.Warn("Dropping malformed quiz event", zap.Error(err))
				continue
			}
			pending = append(pending, event)
			if fire == nil {
				timer = time.NewTimer(window)
				fire = timer.C
			}
		case <-fire:
			batch := pending
			pending = nil
			fire = nil
			handle(ctx, batch)
		}
	}
}
