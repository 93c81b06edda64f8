package gateway

import (
	"context"

	"storefront/internal/domain"
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type ReviewStore interface {
	ProductReviews(ctx context.Context, productID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, r domain.Review) (*domain.Review, error)
	UpdateReview(ctx context.Context, r domain.Review) (*domain.Review, error)
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}

type CartStore interface {
	CartItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	CartCount(ctx context.Context, userID string) (int, error)
	AddToCart(ctx context.Context, userID, productID string, size domain.Size, quantity int) (*domain.CartItem, error)
	UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, itemID string) error
}

type OrderStore interface {
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

type AddressStore interface {
	Addresses(ctx context.Context, userID string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, a domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, a domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, userID, id string) error
	SetDefaultAddress(ctx context.Context, userID, id string) error
}

// Store is the backing surface the gateway routes to. The live Postgres store
// and the fixture store both implement it.
type Store interface {
	ProductStore
	ReviewStore
	CartStore
	OrderStore
	AddressStore
}

// FixtureStore is a Store that also knows the user mock mode acts as.
type FixtureStore interface {
	Store
	MockUser() domain.User
}

// OrderPublisher announces orders persisted in the live store.
type OrderPublisher interface {
	OrderCreated(ctx context.Context, o domain.Order) error
}
