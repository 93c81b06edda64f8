package gateway

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

func (g *Gateway) CartItems(ctx context.Context, userID string) (Result[[]domain.CartItem], error) {
	return read(ctx, g, "CartItems", func(s Store) ([]domain.CartItem, error) {
		return s.CartItems(ctx, userID)
	})
}

// CartCount is the number of units in the cart, for the header badge.
func (g *Gateway) CartCount(ctx context.Context, userID string) (Result[int], error) {
	return read(ctx, g, "CartCount", func(s Store) (int, error) {
		return s.CartCount(ctx, userID)
	})
}

// AddToCart adds quantity units of a product in a size. Adding the same
// (product, size) again increases the existing line.
func (g *Gateway) AddToCart(ctx context.Context, in AddToCartInput) (Result[*domain.CartItem], error) {
	if err := check(in); err != nil {
		return Result[*domain.CartItem]{}, err
	}
	return write(ctx, g, "AddToCart", func(s Store) (*domain.CartItem, error) {
		p, err := s.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.HasSize(in.Size) {
			return nil, fmt.Errorf("%w: size %q is not offered for %s", domain.ErrInvalidInput, in.Size, p.Name)
		}
		return s.AddToCart(ctx, in.UserID, in.ProductID, in.Size, in.Quantity)
	})
}

// UpdateCartItem sets a line's quantity. Zero or less removes the line.
func (g *Gateway) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) (Result[struct{}], error) {
	if quantity > domain.MaxLineQuantity {
		return Result[struct{}]{}, fmt.Errorf("%w: quantity must be at most %d", domain.ErrInvalidInput, domain.MaxLineQuantity)
	}
	return write(ctx, g, "UpdateCartItem", func(s Store) (struct{}, error) {
		return noValue(s.UpdateCartQuantity(ctx, userID, itemID, quantity))
	})
}

func (g *Gateway) RemoveCartItem(ctx context.Context, userID, itemID string) (Result[struct{}], error) {
	return write(ctx, g, "RemoveCartItem", func(s Store) (struct{}, error) {
		return noValue(s.RemoveCartItem(ctx, userID, itemID))
	})
}
