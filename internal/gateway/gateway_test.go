package gateway

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/fixture"
	"storefront/internal/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Store        = (*fixture.Store)(nil)
	_ FixtureStore = (*fixture.Store)(nil)
	_ Store        = (*LiveStore)(nil)
)

var errDown = errors.New("connection refused")

// downStore fails every call the way an unreachable database would.
type downStore struct{}

func (downStore) ListProducts(context.Context) ([]domain.Product, error) { return nil, errDown }
func (downStore) GetProduct(context.Context, string) (*domain.Product, error) {
	return nil, errDown
}
func (downStore) ProductReviews(context.Context, string) ([]domain.Review, error) {
	return nil, errDown
}
func (downStore) CreateReview(context.Context, domain.Review) (*domain.Review, error) {
	return nil, errDown
}
func (downStore) UpdateReview(context.Context, domain.Review) (*domain.Review, error) {
	return nil, errDown
}
func (downStore) HasPurchased(context.Context, string, string) (bool, error) { return false, errDown }
func (downStore) CartItems(context.Context, string) ([]domain.CartItem, error) {
	return nil, errDown
}
func (downStore) CartCount(context.Context, string) (int, error) { return 0, errDown }
func (downStore) AddToCart(context.Context, string, string, domain.Size, int) (*domain.CartItem, error) {
	return nil, errDown
}
func (downStore) UpdateCartQuantity(context.Context, string, string, int) error { return errDown }
func (downStore) RemoveCartItem(context.Context, string, string) error          { return errDown }
func (downStore) ListOrders(context.Context, string) ([]domain.Order, error)    { return nil, errDown }
func (downStore) GetOrder(context.Context, string, string) (*domain.Order, error) {
	return nil, errDown
}
func (downStore) CreateOrder(context.Context, domain.Order) (*domain.Order, error) {
	return nil, errDown
}
func (downStore) UpdateOrderStatus(context.Context, string, domain.OrderStatus) (*domain.Order, error) {
	return nil, errDown
}
func (downStore) Addresses(context.Context, string) ([]domain.Address, error) { return nil, errDown }
func (downStore) CreateAddress(context.Context, domain.Address) (*domain.Address, error) {
	return nil, errDown
}
func (downStore) UpdateAddress(context.Context, domain.Address) (*domain.Address, error) {
	return nil, errDown
}
func (downStore) DeleteAddress(context.Context, string, string) error     { return errDown }
func (downStore) SetDefaultAddress(context.Context, string, string) error { return errDown }

type recordingPublisher struct {
	orders []domain.Order
}

func (p *recordingPublisher) OrderCreated(_ context.Context, o domain.Order) error {
	p.orders = append(p.orders, o)
	return nil
}

func loadFixtures(t *testing.T) *fixture.Store {
	t.Helper()
	s, err := fixture.Load()
	require.NoError(t, err)
	return s
}

func mockGateway(t *testing.T, opts ...Option) (*Gateway, *fixture.Store) {
	t.Helper()
	fx := loadFixtures(t)
	g, err := New(mode.Mock, nil, fx, opts...)
	require.NoError(t, err)
	return g, fx
}

func TestNew_RequiresStores(t *testing.T) {
	_, err := New(mode.Live, nil, loadFixtures(t))
	assert.Error(t, err)
	_, err = New(mode.Mock, nil, nil)
	assert.Error(t, err)
}

func TestCurrentMockUser(t *testing.T) {
	g, _ := mockGateway(t)
	u := g.CurrentMockUser()
	require.NotNil(t, u)
	assert.Equal(t, "mock-user", u.ID)

	live, err := New(mode.Live, loadFixtures(t), loadFixtures(t))
	require.NoError(t, err)
	assert.Nil(t, live.CurrentMockUser())
}

func TestListProducts_FallbackMatchesMock(t *testing.T) {
	ctx := context.Background()
	spec := catalog.FilterSpec{PriceRange: catalog.Price20kTo50k, SortBy: catalog.SortPriceLow}

	mock, _ := mockGateway(t)
	want, err := mock.ListProducts(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, SourceFixture, want.Source)

	degraded, err := New(mode.Live, downStore{}, loadFixtures(t))
	require.NoError(t, err)
	got, err := degraded.ListProducts(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, want.Value, got.Value)
	assert.False(t, got.Persisted())
}

func TestReads_FallBackOnEveryOperation(t *testing.T) {
	ctx := context.Background()
	g, err := New(mode.Live, downStore{}, loadFixtures(t))
	require.NoError(t, err)

	featured, err := g.FeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, featured.Source)
	assert.Len(t, featured.Value, defaultFeaturedLimit)

	p, err := g.GetProduct(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Classic Denim Jacket", p.Value.Name)

	reviews, err := g.ProductReviews(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, reviews.Value, 2)

	cart, err := g.CartItems(ctx, "mock-user")
	require.NoError(t, err)
	assert.Len(t, cart.Value, 1)

	count, err := g.CartCount(ctx, "mock-user")
	require.NoError(t, err)
	assert.Equal(t, 2, count.Value)

	orders, err := g.ListOrders(ctx, "mock-user")
	require.NoError(t, err)
	assert.Len(t, orders.Value, 2)

	addrs, err := g.Addresses(ctx, "mock-user")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, addrs.Source)
}

func TestReads_LiveSource(t *testing.T) {
	g, err := New(mode.Live, loadFixtures(t), loadFixtures(t))
	require.NoError(t, err)
	res, err := g.ListProducts(context.Background(), catalog.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, SourceLive, res.Source)
	assert.True(t, res.Persisted())
}

func TestDomainErrorsAreNotMasked(t *testing.T) {
	g, err := New(mode.Live, loadFixtures(t), loadFixtures(t))
	require.NoError(t, err)

	_, err = g.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, IsRemote(err))
}

func TestWrites_SurfaceRemoteFailure(t *testing.T) {
	ctx := context.Background()
	fx := loadFixtures(t)
	g, err := New(mode.Live, downStore{}, fx)
	require.NoError(t, err)

	_, err = g.AddToCart(ctx, AddToCartInput{UserID: "mock-user", ProductID: "2", Size: domain.SizeS, Quantity: 1})
	require.Error(t, err)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "AddToCart", remote.Op)
	assert.ErrorIs(t, err, errDown)

	items, _ := fx.CartItems(ctx, "mock-user")
	assert.Len(t, items, 1, "fixtures must not absorb a failed write")
}

func TestWrites_FallbackWhenEnabled(t *testing.T) {
	ctx := context.Background()
	fx := loadFixtures(t)
	g, err := New(mode.Live, downStore{}, fx, WithFallbackWrites(true))
	require.NoError(t, err)

	res, err := g.AddToCart(ctx, AddToCartInput{UserID: "mock-user", ProductID: "2", Size: domain.SizeS, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.False(t, res.Persisted())

	items, _ := fx.CartItems(ctx, "mock-user")
	assert.Len(t, items, 2)
}

func TestAddToCart_TwiceKeepsSingleLine(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)
	in := AddToCartInput{UserID: "shopper", ProductID: "1", Size: domain.SizeM, Quantity: 1}

	_, err := g.AddToCart(ctx, in)
	require.NoError(t, err)
	second, err := g.AddToCart(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Value.Quantity)

	cart, err := g.CartItems(ctx, "shopper")
	require.NoError(t, err)
	require.Len(t, cart.Value, 1)
	assert.Equal(t, 2, cart.Value[0].Quantity)
}

func TestAddToCart_Validation(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	_, err := g.AddToCart(ctx, AddToCartInput{UserID: "u", ProductID: "1", Size: domain.SizeM, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.AddToCart(ctx, AddToCartInput{UserID: "u", ProductID: "1", Size: domain.SizeXXL, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.AddToCart(ctx, AddToCartInput{UserID: "u", ProductID: "nope", Size: domain.SizeM, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCartItem(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	_, err := g.UpdateCartItem(ctx, "mock-user", "cart1", 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.UpdateCartItem(ctx, "mock-user", "cart1", 4)
	require.NoError(t, err)
	count, _ := g.CartCount(ctx, "mock-user")
	assert.Equal(t, 4, count.Value)

	_, err = g.UpdateCartItem(ctx, "mock-user", "cart1", 0)
	require.NoError(t, err)
	count, _ = g.CartCount(ctx, "mock-user")
	assert.Equal(t, 0, count.Value)

	_, err = g.RemoveCartItem(ctx, "mock-user", "cart1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	res, err := g.CreateOrder(ctx, CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 50000})
	require.NoError(t, err)
	order := res.Value
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(50000), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(25000), order.Items[0].PriceAtTime)
	assert.Equal(t, "Classic Denim Jacket", order.Items[0].ProductName)

	cart, _ := g.CartItems(ctx, "mock-user")
	assert.Empty(t, cart.Value)

	_, err = g.CreateOrder(ctx, CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 0})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCreateOrder_TotalMismatchKeepsCart(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	_, err := g.CreateOrder(ctx, CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 49999})
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)

	cart, _ := g.CartItems(ctx, "mock-user")
	assert.Len(t, cart.Value, 1)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)
	in := CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 50000, IdempotencyKey: "checkout-1"}

	first, err := g.CreateOrder(ctx, in)
	require.NoError(t, err)
	second, err := g.CreateOrder(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.Value.ID, second.Value.ID)

	orders, _ := g.ListOrders(ctx, "mock-user")
	assert.Len(t, orders.Value, 3)
}

func TestCreateOrder_FailedAttemptReleasesKey(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)
	in := CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 1, IdempotencyKey: "retry-me"}

	_, err := g.CreateOrder(ctx, in)
	require.ErrorIs(t, err, domain.ErrTotalMismatch)

	in.Total = 50000
	res, err := g.CreateOrder(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Value.ID)
}

func TestCreateOrder_PublishesLiveOrders(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	g, err := New(mode.Live, loadFixtures(t), loadFixtures(t), WithPublisher(pub))
	require.NoError(t, err)

	res, err := g.CreateOrder(ctx, CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 50000})
	require.NoError(t, err)
	require.Len(t, pub.orders, 1)
	assert.Equal(t, res.Value.ID, pub.orders[0].ID)

	mock, _ := mockGateway(t, WithPublisher(pub))
	_, err = mock.CreateOrder(ctx, CheckoutInput{UserID: "mock-user", ShippingAddress: "1 Road", Total: 50000})
	require.NoError(t, err)
	assert.Len(t, pub.orders, 1, "fixture orders are not announced")
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	verified, err := g.AddReview(ctx, ReviewInput{UserID: "mock-user", UserName: "Mock User", ProductID: "2", Rating: 5, Comment: "  Lovely  "})
	require.NoError(t, err)
	assert.True(t, verified.Value.IsVerifiedPurchase)
	assert.Equal(t, "Lovely", verified.Value.Comment)

	unverified, err := g.AddReview(ctx, ReviewInput{UserID: "mock-user", ProductID: "5", Rating: 3})
	require.NoError(t, err)
	assert.False(t, unverified.Value.IsVerifiedPurchase)

	_, err = g.AddReview(ctx, ReviewInput{UserID: "mock-user", ProductID: "2", Rating: 4})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = g.AddReview(ctx, ReviewInput{UserID: "mock-user", ProductID: "3", Rating: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := g.UpdateReview(ctx, ReviewUpdate{UserID: "mock-user", ReviewID: verified.Value.ID, Rating: 4, Comment: "Good"})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Value.Rating)

	_, err = g.UpdateReview(ctx, ReviewUpdate{UserID: "someone", ReviewID: verified.Value.ID, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	res, err := g.UpdateOrderStatus(ctx, "order1", domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, res.Value.Status)

	_, err = g.UpdateOrderStatus(ctx, "order1", "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.UpdateOrderStatus(ctx, "order2", domain.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAddresses(t *testing.T) {
	ctx := context.Background()
	g, _ := mockGateway(t)

	created, err := g.SaveAddress(ctx, AddressInput{UserID: "mock-user", Street: " 5 New Rd ", City: "Lagos", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "5 New Rd", created.Value.Street)
	assert.True(t, created.Value.IsDefault)

	_, err = g.SaveAddress(ctx, AddressInput{UserID: "mock-user"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := g.SaveAddress(ctx, AddressInput{ID: "addr1", UserID: "mock-user", Street: "123 Mock Street", City: "Ikeja"})
	require.NoError(t, err)
	assert.Equal(t, "Ikeja", updated.Value.City)
	assert.False(t, updated.Value.IsDefault)

	_, err = g.SetDefaultAddress(ctx, "mock-user", "addr1")
	require.NoError(t, err)
	list, _ := g.Addresses(ctx, "mock-user")
	require.Len(t, list.Value, 2)
	assert.Equal(t, "addr1", list.Value[0].ID)

	_, err = g.DeleteAddress(ctx, "mock-user", created.Value.ID)
	require.NoError(t, err)
}
