package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsquiz/internal/domain"

	"go.uber.org/zap"
)

const (
	SuccessSubject = "quiz auto-deploy complete"
	FailureSubject = "quiz auto-deploy failed"

	timeLayout = "2006-01-02 15:04:05"
)

// InvalidateAllPaths covers every page of the site.
var InvalidateAllPaths = []string{"/*"}

// TriggerResult describes what one batch of events caused.
type TriggerResult struct {
	Message        string   `json:"message"`
	Quizzes        []string `json:"quizzes,omitempty"`
	InvalidationID string   `json:"invalidationId,omitempty"`
}

// Trigger invalidates the CDN when quizzes are written and reports the outcome.
type Trigger struct {
	invalidator domain.Invalidator
	notifier    domain.Notifier // optional
	clock       domain.Clock
	logger      *zap.Logger
}

// NewTrigger wires a trigger. notifier may be nil, in which case only the
// invalidation runs.
func NewTrigger(invalidator domain.Invalidator, notifier domain.Notifier, clock domain.Clock, logger *zap.Logger) *Trigger {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{
		invalidator: invalidator,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

// Handle processes one batch of change events. Only upserts reach the site,
// so a batch of removals alone does nothing.
func (t *Trigger) Handle(ctx context.Context, events []domain.QuizEvent) (*TriggerResult, error) {
	var quizzes []string
	for _, e := range events {
		if e.Event != domain.QuizEventUpsert {
			continue
		}
		quizzes = append(quizzes, fmt.Sprintf("%s - %s", e.GameType, e.QuizDate))
	}

	if len(quizzes) == 0 {
		t.logger.Debug("No quiz upserts in batch", zap.Int("events", len(events)))
		return &TriggerResult{Message: "No action needed"}, nil
	}

	id, err := t.invalidator.Invalidate(ctx, InvalidateAllPaths)
	if err != nil {
		t.logger.Error("CDN invalidation failed", zap.Error(err), zap.Strings("quizzes", quizzes))
		t.notify(ctx, FailureSubject, fmt.Sprintf("Error: %v\nTime: %s", err, t.now()))
		return nil, err
	}

	t.logger.Info("Auto-deploy triggered", zap.String("invalidation_id", id), zap.Strings("quizzes", quizzes))

	var b strings.Builder
	b.WriteString("New quizzes were saved and the site cache was invalidated.\n\n")
	b.WriteString("Quizzes:\n")
	for _, q := range quizzes {
		b.WriteString("- " + q + "\n")
	}
	fmt.Fprintf(&b, "\nInvalidation ID: %s\n", id)
	fmt.Fprintf(&b, "Time: %s\n\n", t.now())
	b.WriteString("Changes will be visible in 5-10 minutes.")
	t.notify(ctx, SuccessSubject, b.String())

	return &TriggerResult{
		Message:        "Deployment triggered",
		Quizzes:        quizzes,
		InvalidationID: id,
	}, nil
}

func (t *Trigger) notify(ctx context.Context, subject, message string) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.Notify(ctx, subject, message); err != nil {
		t.logger.Warn("Failed to send notification", zap.String("subject", subject), zap.Error(err))
	}
}

func (t *Trigger) now() string {
	return t.clock().Format(timeLayout)
}
