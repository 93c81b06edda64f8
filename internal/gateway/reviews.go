package gateway

import (
	"context"
	"strings"

	"storefront/internal/domain"
)

func (g *Gateway) ProductReviews(ctx context.Context, productID string) (Result[[]domain.Review], error) {
	return read(ctx, g, "ProductReviews", func(s Store) ([]domain.Review, error) {
		return s.ProductReviews(ctx, productID)
	})
}

// AddReview stores a review. The verified-purchase flag is derived from the
// author's order history, never taken from the caller.
func (g *Gateway) AddReview(ctx context.Context, in ReviewInput) (Result[*domain.Review], error) {
	if err := check(in); err != nil {
		return Result[*domain.Review]{}, err
	}
	return write(ctx, g, "AddReview", func(s Store) (*domain.Review, error) {
		if _, err := s.GetProduct(ctx, in.ProductID); err != nil {
			return nil, err
		}
		verified, err := s.HasPurchased(ctx, in.UserID, in.ProductID)
		if err != nil {
			return nil, err
		}
		return s.CreateReview(ctx, domain.Review{
			UserID:             in.UserID,
			ProductID:          in.ProductID,
			Rating:             in.Rating,
			Comment:            strings.TrimSpace(in.Comment),
			IsVerifiedPurchase: verified,
			UserName:           in.UserName,
		})
	})
}

func (g *Gateway) UpdateReview(ctx context.Context, in ReviewUpdate) (Result[*domain.Review], error) {
	if err := check(in); err != nil {
		return Result[*domain.Review]{}, err
	}
	return write(ctx, g, "UpdateReview", func(s Store) (*domain.Review, error) {
		return s.UpdateReview(ctx, domain.Review{
			ID:      in.ReviewID,
			UserID:  in.UserID,
			Rating:  in.Rating,
			Comment: strings.TrimSpace(in.Comment),
		})
	})
}
