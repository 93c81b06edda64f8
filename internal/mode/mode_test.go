package mode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	on  bool
	err error
}

func (m *memStore) Get(context.Context) (bool, error) { return m.on, m.err }
func (m *memStore) Set(_ context.Context, on bool) error {
	if m.err != nil {
		return m.err
	}
	m.on = on
	return nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name     string
		forced   bool
		override bool
		want     Mode
	}{
		{"default live", false, false, Live},
		{"forced", true, false, Mock},
		{"override", false, true, Mock},
		{"both", true, true, Mock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Resolve(ctx, tc.forced, &memStore{on: tc.override}, nil)
			assert.Equal(t, tc.want, s.Active())
		})
	}
}

func TestResolve_UnreadableOverrideIsOff(t *testing.T) {
	s := Resolve(context.Background(), false, &memStore{on: true, err: errors.New("down")}, nil)
	assert.Equal(t, Live, s.Active())
}

func TestSetOverride_RequiresReload(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	s := Resolve(ctx, false, store, nil)

	n, err := s.SetOverride(ctx, true)
	require.NoError(t, err)
	assert.True(t, store.on)
	assert.Equal(t, Live, s.Active(), "running mode must not change")
	assert.Equal(t, Mock, n.Pending)
	assert.True(t, n.ReloadRequired)
	assert.Contains(t, n.Message, "restart")

	n, err = s.SetOverride(ctx, false)
	require.NoError(t, err)
	assert.False(t, n.ReloadRequired)
	assert.Empty(t, n.Message)
}

func TestSetOverride_ForcedMock(t *testing.T) {
	ctx := context.Background()
	s := Resolve(ctx, true, &memStore{}, nil)

	n, err := s.SetOverride(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, Mock, n.Pending)
	assert.False(t, n.ReloadRequired)
	assert.Contains(t, n.Message, "build configuration")
}

func TestSetOverride_NoStore(t *testing.T) {
	_, err := Fixed(Live).SetOverride(context.Background(), true)
	assert.Error(t, err)

	n, err := Fixed(Mock).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Mock, n.Active)
	assert.False(t, n.ReloadRequired)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mode.json")
	fs := NewFileStore(path)

	on, err := fs.Get(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, fs.Set(ctx, true))
	on, err = NewFileStore(path).Get(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, fs.Set(ctx, false))
	on, err = fs.Get(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mode.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err := NewFileStore(path).Get(context.Background())
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	store := &RedisStore{client: client, key: "storefront:test:mode"}
	t.Cleanup(func() { client.Del(ctx, store.key) })

	require.NoError(t, store.Set(ctx, true))
	on, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, store.Set(ctx, false))
	on, err = store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}
