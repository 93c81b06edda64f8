package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix       = "idempotency:"
	reserveAttempts = 2
)

// redisClient is the subset of *redis.Client the store uses.
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Reserve claims key. A key that expires between SETNX and GET is claimed
// again once; if it vanishes a second time it is reported as in progress.
func (r *RedisStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		ok, err := r.client.SetNX(ctx, keyPrefix+key, pendingMarker, r.ttl).Result()
		if err != nil {
			return "", false, err
		}
		if ok {
			return "", true, nil
		}
		v, err := r.client.Get(ctx, keyPrefix+key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		if v == pendingMarker {
			return "", false, ErrInProgress
		}
		return v, false, nil
	}
	return "", false, ErrInProgress
}

func (r *RedisStore) Complete(ctx context.Context, key, orderID string) error {
	return r.client.Set(ctx, keyPrefix+key, orderID, r.ttl).Err()
}

func (r *RedisStore) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}
