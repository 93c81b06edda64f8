package mode

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const overrideKey = "storefront:mode:mock"

// RedisStore keeps the override in Redis so every replica resolves the same
// mode on restart.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: overrideKey}
}

func (r *RedisStore) Get(ctx context.Context) (bool, error) {
	v, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return v == "1", nil
}

func (r *RedisStore) Set(ctx context.Context, on bool) error {
	if !on {
		return r.client.Del(ctx, r.key).Err()
	}
	return r.client.Set(ctx, r.key, "1", 0).Err()
}
