package review

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	// Update changes rating and comment of a review owned by r.UserID.
	Update(ctx context.Context, r domain.Review) (*domain.Review, error)
}
