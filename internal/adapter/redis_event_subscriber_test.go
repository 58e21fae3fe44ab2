package adapter

import (
	"context"
	"testing"
	"time"

	"newsquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecodeQuizEvent(t *testing.T) {
	event, err := DecodeQuizEvent(`{"gameType":"BlackSwan","quizDate":"2025-03-10","event":"UPSERT"}`)
	require.NoError(t, err)
	assert.Equal(t, domain.QuizEvent{
		GameType: domain.CategoryBlackSwan,
		QuizDate: "2025-03-10",
		Event:    domain.QuizEventUpsert,
	}, event)

	_, err = DecodeQuizEvent("not json")
	assert.Error(t, err)

	_, err = DecodeQuizEvent(`{"gameType":"BlackSwan"}`)
	assert.Error(t, err)
}

func TestCollectBatches_FlushOnClose(t *testing.T) {
	in := make(chan string, 4)
	in <- `{"gameType":"BlackSwan","quizDate":"2025-03-10","event":"UPSERT"}`
	in <- `garbage`
	in <- `{"gameType":"SignalDecoding","quizDate":"2025-03-10","event":"UPSERT"}`
	close(in)

	var batches [][]domain.QuizEvent
	collectBatches(context.Background(), in, time.Hour, zap.NewNop(), func(ctx context.Context, events []domain.QuizEvent) {
		batches = append(batches, events)
	})

	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	assert.Equal(t, domain.CategorySignalDecoding, batches[0][1].GameType)
}

func TestCollectBatches_WindowSplitsBatches(t *testing.T) {
	in := make(chan string)
	var batches [][]domain.QuizEvent
	done := make(chan struct{})

	go func() {
		collectBatches(context.Background(), in, 10*time.Millisecond, zap.NewNop(), func(ctx context.Context, events []domain.QuizEvent) {
			batches = append(batches, events)
		})
		close(done)
	}()

	in <- `{"gameType":"BlackSwan","quizDate":"2025-03-10","event":"UPSERT"}`
	time.Sleep(100 * time.Millisecond)
	in <- `{"gameType":"BlackSwan","quizDate":"2025-03-11","event":"REMOVE"}`
	close(in)
	<-done

	require.Len(t, batches, 2)
	assert.Equal(t, "2025-03-10", batches[0][0].QuizDate)
	assert.Equal(t, domain.QuizEventRemove, batches[1][0].Event)
}

func TestCollectBatches_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan string)
	done := make(chan struct{})

	go func() {
		collectBatches(ctx, in, time.Hour, zap.NewNop(), func(ctx context.Context, events []domain.QuizEvent) {
			t.Error("no batch expected")
		})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collectBatches did not stop after cancel")
	}
}
