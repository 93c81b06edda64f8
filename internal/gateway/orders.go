package gateway

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"go.uber.org/zap"
)

func (g *Gateway) ListOrders(ctx context.Context, userID string) (Result[[]domain.Order], error) {
	return read(ctx, g, "ListOrders", func(s Store) ([]domain.Order, error) {
		return s.ListOrders(ctx, userID)
	})
}

func (g *Gateway) GetOrder(ctx context.Context, userID, orderID string) (Result[*domain.Order], error) {
	return read(ctx, g, "GetOrder", func(s Store) (*domain.Order, error) {
		return s.GetOrder(ctx, userID, orderID)
	})
}

// CreateOrder turns the user's current cart into a pending order and empties
// the cart. The submitted total must equal the cart total. With an
// idempotency key, a repeated call returns the order created by the first.
func (g *Gateway) CreateOrder(ctx context.Context, in CheckoutInput) (Result[*domain.Order], error) {
	if err := check(in); err != nil {
		return Result[*domain.Order]{}, err
	}

	var scopedKey string
	if in.IdempotencyKey != "" {
		scopedKey = in.UserID + ":" + in.IdempotencyKey
		orderID, reserved, err := g.idem.Reserve(ctx, scopedKey)
		if err != nil {
			return Result[*domain.Order]{}, err
		}
		if !reserved {
			g.log.Info("replaying idempotent checkout", zap.String("user_id", in.UserID), zap.String("order_id", orderID))
			return g.GetOrder(ctx, in.UserID, orderID)
		}
	}

	res, err := write(ctx, g, "CreateOrder", func(s Store) (*domain.Order, error) {
		cart, err := s.CartItems(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		items := domain.NewOrderItems(cart)
		if len(items) == 0 {
			return nil, domain.ErrEmptyCart
		}
		total := domain.CartTotal(cart)
		if in.Total != total {
			return nil, fmt.Errorf("%w: submitted %d, cart %d", domain.ErrTotalMismatch, in.Total, total)
		}
		return s.CreateOrder(ctx, domain.Order{
			UserID:          in.UserID,
			Items:           items,
			TotalAmount:     total,
			ShippingAddress: in.ShippingAddress,
			IdempotencyKey:  in.IdempotencyKey,
		})
	})
	if err != nil {
		if scopedKey != "" {
			if rerr := g.idem.Release(context.WithoutCancel(ctx), scopedKey); rerr != nil {
				g.log.Warn("release idempotency key", zap.Error(rerr))
			}
		}
		return res, err
	}

	if scopedKey != "" {
		if err := g.idem.Complete(ctx, scopedKey, res.Value.ID); err != nil {
			g.log.Warn("record idempotency key", zap.String("order_id", res.Value.ID), zap.Error(err))
		}
	}
	if res.Source == SourceLive && !res.Value.Replayed && g.publisher != nil {
		if err := g.publisher.OrderCreated(ctx, *res.Value); err != nil {
			g.log.Warn("publish order created", zap.String("order_id", res.Value.ID), zap.Error(err))
		}
	}
	return res, nil
}

// UpdateOrderStatus applies a fulfillment status change.
func (g *Gateway) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (Result[*domain.Order], error) {
	if orderID == "" {
		return Result[*domain.Order]{}, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	if !status.Valid() {
		return Result[*domain.Order]{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return write(ctx, g, "UpdateOrderStatus", func(s Store) (*domain.Order, error) {
		return s.UpdateOrderStatus(ctx, orderID, status)
	})
}

// IsRemote reports whether err came from the live store.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
