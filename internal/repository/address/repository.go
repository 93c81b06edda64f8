package address

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
	Update(ctx context.Context, a domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, userID, id string) error
	SetDefault(ctx context.Context, userID, id string) error
}
