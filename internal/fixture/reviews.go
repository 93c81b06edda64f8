package fixture

import (
	"cmp"
	"context"
	"slices"

	"storefront/internal/domain"
)

// ProductReviews lists reviews for a product, newest first.
func (s *Store) ProductReviews(_ context.Context, productID string) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Review{}
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Review) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out, nil
}

// CreateReview stores a review. A user may review a product once.
func (s *Store) CreateReview(_ context.Context, r domain.Review) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.productByID(r.ProductID); !ok {
		return nil, domain.ErrNotFound
	}
	for _, existing := range s.reviews {
		if existing.UserID == r.UserID && existing.ProductID == r.ProductID {
			return nil, domain.ErrAlreadyExists
		}
	}
	now := s.now()
	r.ID = s.newID()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.reviews = append(s.reviews, r)
	return &r, nil
}

// UpdateReview changes rating and comment of a review owned by r.UserID.
func (s *Store) UpdateReview(_ context.Context, r domain.Review) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.reviews {
		if existing.ID != r.ID || existing.UserID != r.UserID {
			continue
		}
		existing.Rating = r.Rating
		existing.Comment = r.Comment
		existing.UpdatedAt = s.now()
		s.reviews[i] = existing
		return &existing, nil
	}
	return nil, domain.ErrNotFound
}

// HasPurchased reports whether any of the user's non-cancelled orders
// contains the product.
func (s *Store) HasPurchased(_ context.Context, userID, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.UserID != userID || o.Status == domain.OrderStatusCancelled {
			continue
		}
		for _, it := range o.Items {
			if it.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
