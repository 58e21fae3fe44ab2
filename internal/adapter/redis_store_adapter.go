package adapter

import (
	"context"
	"errors"
	"time"

	"newsquiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStoreAdapter implements domain.KeyValueStore using a Redis client.
type RedisStoreAdapter struct {
	client *redis.Client
}

// NewRedisStoreAdapter creates a new instance of RedisStoreAdapter.
// It expects a connected *redis.Client.
func NewRedisStoreAdapter(client *redis.Client) domain.KeyValueStore {
	return &RedisStoreAdapter{client: client}
}

// Get translates redis.Nil to domain.ErrKeyNotFound.
func (r *RedisStoreAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *RedisStoreAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisStoreAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisStoreAdapter) ZAdd(ctx context.Context, key string, score float64, member string) error {
	return r.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (r *RedisStoreAdapter) ZRem(ctx context.Context, key string, member string) error {
	return r.client.ZRem(ctx, key, member).Err()
}

func (r *RedisStoreAdapter) ZRevRange(ctx context.Context, key string) ([]string, error) {
	return r.client.ZRevRange(ctx, key, 0, -1).Result()
}

func (r *RedisStoreAdapter) Publish(ctx context.Context, channel string, message string) error {
	return r.client.Publish(ctx, channel, message).Err()
}

// Ping checks the health of the Redis server.
func (r *RedisStoreAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
