package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Order, error)
	// Create stores the order with its items and empties the user's cart in
	// one transaction.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}
