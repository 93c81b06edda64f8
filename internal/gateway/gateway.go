// Package gateway routes storefront reads and writes to the live store or the
// fixture set according to the process mode.
//
// In live mode a failed read is retried once against the fixtures and the
// result is tagged SourceFallback. A failed write is returned as a
// *RemoteError unless fallback writes are enabled, in which case the fixture
// set absorbs the write and the result is tagged SourceFallback. Errors that
// describe the request itself (not found, duplicate, validation) are never
// retried.
package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/idempotency"
	"storefront/internal/mode"
	"go.uber.org/zap"
)

const defaultFeaturedLimit = 4

type Gateway struct {
	mode           mode.Mode
	live           Store
	fixtures       FixtureStore
	log            *zap.Logger
	fallbackWrites bool
	idem           idempotency.Store
	publisher      OrderPublisher
	featuredLimit  int
}

type Option func(*Gateway)

func WithLogger(log *zap.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// WithFallbackWrites lets writes fail open into the fixture set.
func WithFallbackWrites(on bool) Option {
	return func(g *Gateway) { g.fallbackWrites = on }
}

func WithIdempotency(s idempotency.Store) Option {
	return func(g *Gateway) { g.idem = s }
}

func WithPublisher(p OrderPublisher) Option {
	return func(g *Gateway) { g.publisher = p }
}

func WithFeaturedLimit(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.featuredLimit = n
		}
	}
}

// New builds a gateway. live may be nil only in mock mode.
func New(m mode.Mode, live Store, fixtures FixtureStore, opts ...Option) (*Gateway, error) {
	if fixtures == nil {
		return nil, errors.New("gateway: fixture store is required")
	}
	if !m.Mock() && live == nil {
		return nil, errors.New("gateway: live store is required in live mode")
	}
	g := &Gateway{
		mode:          m,
		live:          live,
		fixtures:      fixtures,
		log:           zap.NewNop(),
		idem:          idempotency.NewMemoryStore(idempotency.DefaultTTL),
		featuredLimit: defaultFeaturedLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.Named("gateway")
	return g, nil
}

func (g *Gateway) Mode() mode.Mode {
	return g.mode
}

// CurrentMockUser returns the fixture user in mock mode and nil otherwise.
func (g *Gateway) CurrentMockUser() *domain.User {
	if !g.mode.Mock() {
		return nil
	}
	u := g.fixtures.MockUser()
	return &u
}

func read[T any](ctx context.Context, g *Gateway, op string, call func(Store) (T, error)) (Result[T], error) {
	if g.mode.Mock() {
		v, err := call(g.fixtures)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Value: v, Source: SourceFixture}, nil
	}
	v, err := call(g.live)
	if err == nil {
		return Result[T]{Value: v, Source: SourceLive}, nil
	}
	if isRequestError(ctx, err) {
		return Result[T]{}, err
	}
	g.log.Warn("live read failed, serving fixtures", zap.String("op", op), zap.Error(err))
	v, err = call(g.fixtures)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Value: v, Source: SourceFallback}, nil
}

func write[T any](ctx context.Context, g *Gateway, op string, call func(Store) (T, error)) (Result[T], error) {
	if g.mode.Mock() {
		v, err := call(g.fixtures)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Value: v, Source: SourceFixture}, nil
	}
	v, err := call(g.live)
	if err == nil {
		return Result[T]{Value: v, Source: SourceLive}, nil
	}
	if isRequestError(ctx, err) {
		return Result[T]{}, err
	}
	if !g.fallbackWrites {
		g.log.Error("live write failed", zap.String("op", op), zap.Error(err))
		return Result[T]{}, &RemoteError{Op: op, Err: err}
	}
	g.log.Warn("live write failed, applying to fixtures only", zap.String("op", op), zap.Error(err))
	v, err = call(g.fixtures)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Value: v, Source: SourceFallback}, nil
}

func noValue(err error) (struct{}, error) {
	return struct{}{}, err
}
