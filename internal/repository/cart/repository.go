package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	AddItem(ctx context.Context, userID, productID string, size domain.Size, quantity int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
}
