package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a WindowStore backed by Redis, for deployments with more
// than one process where a process-local map would multiply the quota.
// INCR and PEXPIRE give atomic increment-and-expire semantics per key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed fixed-window store. The prefix
// namespaces keys to avoid collisions with other users of the same database.
func NewRedisStore(client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, ErrStoreRequired
	}
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Incr advances the counter for key. The expiry is attached on the first
// increment of each window so the whole window resets at once.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := s.prefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreFailure, err)
	}

	count := int(incr.Val())
	ttl := pttl.Val()

	// A negative TTL means the key was just created without an expiry.
	if ttl < 0 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, errors.Join(ErrStoreFailure, err)
		}
		ttl = window
	}

	return count, time.Now().Add(ttl), nil
}
