package gateway

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/fixture"
	"storefront/internal/mode"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeoutStore fails the way a driver does when its own deadline expires.
type timeoutStore struct{ downStore }

func (timeoutStore) ListProducts(context.Context) ([]domain.Product, error) {
	return nil, fmt.Errorf("failed to connect: %w", context.DeadlineExceeded)
}

func (timeoutStore) CartItems(context.Context, string) ([]domain.CartItem, error) {
	return nil, fmt.Errorf("read: %w", context.DeadlineExceeded)
}

// silentPostgres accepts connections and never answers, like a database host
// that is up at the TCP level but hung.
func silentPostgres(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return ln.Addr().String()
}

func TestRead_DriverTimeoutFallsBack(t *testing.T) {
	g, err := New(mode.Live, timeoutStore{}, loadFixtures(t))
	require.NoError(t, err)

	res, err := g.ListProducts(context.Background(), catalog.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Value, 8)
}

func TestRead_CallerCancellationIsNotMasked(t *testing.T) {
	g, err := New(mode.Live, timeoutStore{}, loadFixtures(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.ListProducts(ctx, catalog.DefaultFilter())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, IsRemote(err))
}

func TestWrite_DriverTimeoutIsRemote(t *testing.T) {
	g, err := New(mode.Live, timeoutStore{}, loadFixtures(t))
	require.NoError(t, err)

	_, err = g.CreateOrder(context.Background(), CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 50000})
	require.Error(t, err)
	assert.True(t, IsRemote(err))
}

func TestLiveStore_HungDatabaseFallsBack(t *testing.T) {
	dsn := fmt.Sprintf("postgres://u:p@%s/storefront?sslmode=disable&connect_timeout=1", silentPostgres(t))
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	g, err := New(mode.Live, NewLiveStore(pool, nil), loadFixtures(t))
	require.NoError(t, err)

	start := time.Now()
	res, err := g.ListProducts(context.Background(), catalog.DefaultFilter())
	require.NoError(t, err, "a hung database must not fail catalog reads")
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Value, 8)
	assert.Less(t, time.Since(start), 10*time.Second)

	_, err = g.AddToCart(context.Background(), AddToCartInput{UserID: "u-1", ProductID: "1", Size: domain.SizeM, Quantity: 1})
	require.Error(t, err)
	assert.True(t, IsRemote(err))
}

// dedupingStore stands in for a live store whose unique index maps a reused
// idempotency key back to the order it already created.
type dedupingStore struct {
	*fixture.Store
	byKey map[string]domain.Order
}

func (s *dedupingStore) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if prev, ok := s.byKey[o.IdempotencyKey]; ok {
		prev.Replayed = true
		return &prev, nil
	}
	created, err := s.Store.CreateOrder(ctx, o)
	if err != nil {
		return nil, err
	}
	s.byKey[o.IdempotencyKey] = *created
	return created, nil
}

func TestCreateOrder_StoreReplayIsNotRepublished(t *testing.T) {
	ctx := context.Background()
	live := &dedupingStore{Store: loadFixtures(t), byKey: map[string]domain.Order{}}
	pub := &recordingPublisher{}
	in := CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 50000, IdempotencyKey: "k-1"}

	// Separate gateways share the database but not the in-process key store.
	first, err := New(mode.Live, live, loadFixtures(t), WithPublisher(pub))
	require.NoError(t, err)
	created, err := first.CreateOrder(ctx, in)
	require.NoError(t, err)

	_, err = live.AddToCart(ctx, "mock-user", "1", domain.SizeM, 2)
	require.NoError(t, err)

	second, err := New(mode.Live, live, loadFixtures(t), WithPublisher(pub))
	require.NoError(t, err)
	again, err := second.CreateOrder(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, created.Value.ID, again.Value.ID)
	require.Len(t, pub.orders, 1, "an order already created must not be announced twice")
	assert.Equal(t, created.Value.ID, pub.orders[0].ID)
}
