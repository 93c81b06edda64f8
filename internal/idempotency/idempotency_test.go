package idempotency

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store, key string) {
	t.Helper()
	ctx := context.Background()

	id, reserved, err := s.Reserve(ctx, key)
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Empty(t, id)

	_, reserved, err = s.Reserve(ctx, key)
	assert.ErrorIs(t, err, ErrInProgress)
	assert.False(t, reserved)

	require.NoError(t, s.Complete(ctx, key, "order-42"))
	id, reserved, err = s.Reserve(ctx, key)
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, "order-42", id)

	require.NoError(t, s.Release(ctx, key))
	_, reserved, err = s.Reserve(ctx, key)
	require.NoError(t, err)
	assert.True(t, reserved)
	require.NoError(t, s.Release(ctx, key))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(0), "k1")
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	_, reserved, err := s.Reserve(ctx, "k")
	require.NoError(t, err)
	require.True(t, reserved)

	now = now.Add(2 * time.Minute)
	_, reserved, err = s.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, reserved, "expired reservation should be claimable again")
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	exerciseStore(t, NewRedisStore(client, time.Minute), "test:"+uuid.NewString())
}

// vanishingRedis reports every key as taken but gone by the time it is read,
// as when the reservation keeps expiring between SETNX and GET.
type vanishingRedis struct {
	setnxCalls int
	getCalls   int
}

func (v *vanishingRedis) SetNX(ctx context.Context, _ string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	v.setnxCalls++
	return redis.NewBoolResult(false, nil)
}

func (v *vanishingRedis) Get(ctx context.Context, _ string) *redis.StringCmd {
	v.getCalls++
	return redis.NewStringResult("", redis.Nil)
}

func (v *vanishingRedis) Set(ctx context.Context, _ string, _ interface{}, _ time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (v *vanishingRedis) Del(ctx context.Context, _ ...string) *redis.IntCmd {
	return redis.NewIntResult(1, nil)
}

func TestRedisStore_ReserveRetriesOnce(t *testing.T) {
	client := &vanishingRedis{}
	s := &RedisStore{client: client, ttl: time.Minute}

	_, reserved, err := s.Reserve(context.Background(), "k")
	assert.ErrorIs(t, err, ErrInProgress)
	assert.False(t, reserved)
	assert.Equal(t, 2, client.setnxCalls)
	assert.Equal(t, 2, client.getCalls)
}
