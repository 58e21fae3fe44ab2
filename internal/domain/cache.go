package domain

import (
	"context"
	"time"
)

// StoreError represents an error originating from the key-value store.
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

// ErrKeyNotFound is returned when a key is not present in the store.
const ErrKeyNotFound = StoreError("store: key not found")

// KeyValueStore defines the port for the key-value backend that holds quiz data.
// Implementations of this interface are adapters (e.g., RedisStoreAdapter).
type KeyValueStore interface {
	// Get retrieves a value. It returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, overwriting an existing one.
	// If expiration is 0, the value does not expire.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes a key. It does not error if the key is absent.
	Delete(ctx context.Context, key string) error

	// ZAdd adds member to the sorted set at key with the given score.
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRem removes member from the sorted set at key.
	ZRem(ctx context.Context, key string, member string) error

	// ZRevRange returns every member of the sorted set at key, highest score first.
	ZRevRange(ctx context.Context, key string) ([]string, error)

	// Publish sends message on a notification channel.
	Publish(ctx context.Context, channel string, message string) error

	// Ping checks the health of the store.
	Ping(ctx context.Context) error
}
