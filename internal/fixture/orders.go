package fixture

import (
	"cmp"
	"context"
	"slices"

	"storefront/internal/domain"
)

// ListOrders returns the user's orders, newest first.
func (s *Store) ListOrders(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out, nil
}

func (s *Store) GetOrder(_ context.Context, userID, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == orderID && o.UserID == userID {
			o = cloneOrder(o)
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// CreateOrder stores the order with its items and clears the user's cart.
// Both happen under one lock, so readers never see a half-applied checkout.
func (s *Store) CreateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	order.ID = s.newID()
	order.Status = domain.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now
	order.Items = slices.Clone(order.Items)
	for i := range order.Items {
		order.Items[i].ID = s.newID()
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = now
	}
	s.orders = append(s.orders, order)

	s.cartItems = slices.DeleteFunc(s.cartItems, func(it domain.CartItem) bool {
		return it.UserID == order.UserID
	})

	out := cloneOrder(order)
	return &out, nil
}

// UpdateOrderStatus moves an order along its lifecycle.
func (s *Store) UpdateOrderStatus(_ context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID != orderID {
			continue
		}
		if !o.Status.CanTransitionTo(status) {
			return nil, domain.ErrInvalidTransition
		}
		o.Status = status
		o.UpdatedAt = s.now()
		s.orders[i] = o
		out := cloneOrder(o)
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
