package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsquiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStoreAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()

	key := "newsquiz:quiz:BlackSwan:2025-03-10"
	expectedValue := `{"gameType":"BlackSwan"}`

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(expectedValue)
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, expectedValue, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyNotFound", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectGet(key).SetErr(redisErr)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()

	key := "newsquiz:quiz:BlackSwan:2025-03-10"
	value := "{}"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(key, value, 0).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, key, value, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WithExpiration", func(t *testing.T) {
		mock.ExpectSet(key, value, time.Hour).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, key, value, time.Hour))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectSet(key, value, 0).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Set(ctx, key, value, 0), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()

	mock.ExpectDel("k").SetVal(1)
	assert.NoError(t, adapter.Delete(ctx, "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreAdapter_SortedSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()
	key := "newsquiz:quiz:BlackSwan:dates"

	t.Run("ZAdd", func(t *testing.T) {
		mock.ExpectZAdd(key, redis.Z{Score: 20250310, Member: "2025-03-10"}).SetVal(1)
		assert.NoError(t, adapter.ZAdd(ctx, key, 20250310, "2025-03-10"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ZRem", func(t *testing.T) {
		mock.ExpectZRem(key, "2025-03-10").SetVal(1)
		assert.NoError(t, adapter.ZRem(ctx, key, "2025-03-10"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ZRevRange", func(t *testing.T) {
		mock.ExpectZRevRange(key, 0, -1).SetVal([]string{"2025-03-11", "2025-03-10"})
		dates, err := adapter.ZRevRange(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, []string{"2025-03-11", "2025-03-10"}, dates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Publish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()

	mock.ExpectPublish("newsquiz:quiz-events", `{"event":"UPSERT"}`).SetVal(1)
	assert.NoError(t, adapter.Publish(ctx, "newsquiz:quiz-events", `{"event":"UPSERT"}`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectPing().SetVal("PONG")
		assert.NoError(t, adapter.Ping(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectPing().SetErr(redisErr)
		assert.ErrorIs(t, adapter.Ping(ctx), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
