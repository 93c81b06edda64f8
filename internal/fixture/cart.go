package fixture

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

// CartItems lists the user's cart with products attached, oldest line first.
func (s *Store) CartItems(_ context.Context, userID string) ([]domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.CartItem{}
	for _, it := range s.cartItems {
		if it.UserID != userID {
			continue
		}
		if p, ok := s.productByID(it.ProductID); ok {
			it.Product = &p
		}
		out = append(out, it)
	}
	return out, nil
}

// CartCount sums quantities across the user's cart.
func (s *Store) CartCount(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, it := range s.cartItems {
		if it.UserID == userID {
			count += it.Quantity
		}
	}
	return count, nil
}

// AddToCart upserts the (user, product, size) line. An existing line has its
// quantity increased rather than a second line being created, up to
// domain.MaxLineQuantity.
func (s *Store) AddToCart(_ context.Context, userID, productID string, size domain.Size, quantity int) (*domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productByID(productID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	now := s.now()
	for i, it := range s.cartItems {
		if it.UserID == userID && it.ProductID == productID && it.Size == size {
			if it.Quantity+quantity > domain.MaxLineQuantity {
				return nil, fmt.Errorf("%w: line would exceed %d units", domain.ErrInvalidInput, domain.MaxLineQuantity)
			}
			it.Quantity += quantity
			it.UpdatedAt = now
			s.cartItems[i] = it
			it.Product = &p
			return &it, nil
		}
	}

	item := domain.CartItem{
		ID:        s.newID(),
		UserID:    userID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cartItems = append(s.cartItems, item)
	item.Product = &p
	return &item, nil
}

// UpdateCartQuantity sets a line's quantity; zero or less removes the line.
func (s *Store) UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveCartItem(ctx, userID, itemID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.cartItems {
		if it.ID == itemID && it.UserID == userID {
			s.cartItems[i].Quantity = quantity
			s.cartItems[i].UpdatedAt = s.now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) RemoveCartItem(_ context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.cartItems {
		if it.ID == itemID && it.UserID == userID {
			s.cartItems = append(s.cartItems[:i], s.cartItems[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
