package gateway

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository/address"
	"storefront/internal/repository/cart"
	"storefront/internal/repository/order"
	"storefront/internal/repository/product"
	"storefront/internal/repository/review"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// LiveStore adapts the Postgres repositories to Store.
type LiveStore struct {
	products  product.Repository
	carts     cart.Repository
	orders    order.Repository
	reviews   review.Repository
	addresses address.Repository
}

func NewLiveStore(pool *pgxpool.Pool, log *zap.Logger) *LiveStore {
	return &LiveStore{
		products:  product.NewPostgres(pool, log),
		carts:     cart.NewPostgres(pool, log),
		orders:    order.NewPostgres(pool, log),
		reviews:   review.NewPostgres(pool, log),
		addresses: address.NewPostgres(pool, log),
	}
}

func (l *LiveStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return l.products.List(ctx)
}

func (l *LiveStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return l.products.GetByID(ctx, id)
}

func (l *LiveStore) ProductReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	return l.reviews.ListByProduct(ctx, productID)
}

func (l *LiveStore) CreateReview(ctx context.Context, r domain.Review) (*domain.Review, error) {
	return l.reviews.Create(ctx, r)
}

func (l *LiveStore) UpdateReview(ctx context.Context, r domain.Review) (*domain.Review, error) {
	return l.reviews.Update(ctx, r)
}

func (l *LiveStore) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	return l.orders.HasPurchased(ctx, userID, productID)
}

func (l *LiveStore) CartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return l.carts.ListByUser(ctx, userID)
}

func (l *LiveStore) CartCount(ctx context.Context, userID string) (int, error) {
	return l.carts.CountByUser(ctx, userID)
}

func (l *LiveStore) AddToCart(ctx context.Context, userID, productID string, size domain.Size, quantity int) (*domain.CartItem, error) {
	return l.carts.AddItem(ctx, userID, productID, size, quantity)
}

func (l *LiveStore) UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	return l.carts.SetQuantity(ctx, userID, itemID, quantity)
}

func (l *LiveStore) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	return l.carts.RemoveItem(ctx, userID, itemID)
}

func (l *LiveStore) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return l.orders.ListByUser(ctx, userID)
}

func (l *LiveStore) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return l.orders.GetByID(ctx, userID, orderID)
}

func (l *LiveStore) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return l.orders.Create(ctx, o)
}

func (l *LiveStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	return l.orders.UpdateStatus(ctx, orderID, status)
}

func (l *LiveStore) Addresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return l.addresses.ListByUser(ctx, userID)
}

func (l *LiveStore) CreateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	return l.addresses.Create(ctx, a)
}

func (l *LiveStore) UpdateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	return l.addresses.Update(ctx, a)
}

func (l *LiveStore) DeleteAddress(ctx context.Context, userID, id string) error {
	return l.addresses.Delete(ctx, userID, id)
}

func (l *LiveStore) SetDefaultAddress(ctx context.Context, userID, id string) error {
	return l.addresses.SetDefault(ctx, userID, id)
}
