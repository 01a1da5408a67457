package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// processingMarker holds an idempotency key while the first request runs.
const processingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore. Keys are written under
// <prefix>idempotency:, sharing the namespace of the ledger state keys.
func NewIdempotencyStore(client *redis.Client, prefix string) *IdempotencyStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &IdempotencyStore{
		client: client,
		prefix: prefix + "idempotency:",
	}
}

// CheckAndSet claims key. When the key is already taken it reports the
// stored response, which is the processing marker while the owner is still running.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	var value any = processingMarker
	if response != nil {
		value = response
	}

	set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if set {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET.
			return true, nil, nil
		}
		return false, nil, err
	}

	return true, existing, nil
}

// Update replaces the marker with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Release deletes key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
