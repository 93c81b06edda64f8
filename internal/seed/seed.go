// Package seed copies the fixture snapshot into Postgres so a fresh database
// serves the same catalog as mock mode.
package seed

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/fixture"
	"storefront/internal/repository/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Summary counts the rows written by Apply.
type Summary struct {
	Products  int
	Reviews   int
	CartItems int
	Orders    int
	Addresses int
}

// Apply writes the snapshot. Products are upserted; the other rows are
// inserted once by id and left alone on later runs.
func Apply(ctx context.Context, pool *pgxpool.Pool, snap *fixture.Snapshot, log *zap.Logger) (Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var sum Summary

	products := product.NewPostgres(pool, log)
	for _, p := range snap.Products {
		if _, err := products.Upsert(ctx, p); err != nil {
			return sum, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		sum.Products++
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return sum, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, r := range snap.Reviews {
		n, err := insertReview(ctx, tx, r)
		if err != nil {
			return sum, fmt.Errorf("insert review %s: %w", r.ID, err)
		}
		sum.Reviews += n
	}
	for _, it := range snap.CartItems {
		n, err := insertCartItem(ctx, tx, it)
		if err != nil {
			return sum, fmt.Errorf("insert cart item %s: %w", it.ID, err)
		}
		sum.CartItems += n
	}
	for _, o := range snap.Orders {
		n, err := insertOrder(ctx, tx, o)
		if err != nil {
			return sum, fmt.Errorf("insert order %s: %w", o.ID, err)
		}
		sum.Orders += n
	}
	for _, a := range snap.Addresses {
		n, err := insertAddress(ctx, tx, a)
		if err != nil {
			return sum, fmt.Errorf("insert address %s: %w", a.ID, err)
		}
		sum.Addresses += n
	}

	if err := tx.Commit(ctx); err != nil {
		return sum, err
	}
	log.Info("seed applied",
		zap.Int("products", sum.Products),
		zap.Int("reviews", sum.Reviews),
		zap.Int("cart_items", sum.CartItems),
		zap.Int("orders", sum.Orders),
		zap.Int("addresses", sum.Addresses),
	)
	return sum, nil
}

func insertReview(ctx context.Context, tx pgx.Tx, r domain.Review) (int, error) {
	const q = `
INSERT INTO reviews (id, user_id, product_id, rating, comment, is_verified_purchase, user_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT DO NOTHING
`
	tag, err := tx.Exec(ctx, q, r.ID, r.UserID, r.ProductID, r.Rating, r.Comment, r.IsVerifiedPurchase, r.UserName, r.CreatedAt, r.UpdatedAt)
	return int(tag.RowsAffected()), err
}

func insertCartItem(ctx context.Context, tx pgx.Tx, it domain.CartItem) (int, error) {
	const q = `
INSERT INTO cart_items (id, user_id, product_id, size, quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT DO NOTHING
`
	tag, err := tx.Exec(ctx, q, it.ID, it.UserID, it.ProductID, string(it.Size), it.Quantity, it.CreatedAt, it.UpdatedAt)
	return int(tag.RowsAffected()), err
}

func insertOrder(ctx context.Context, tx pgx.Tx, o domain.Order) (int, error) {
	const insertOrder = `
INSERT INTO orders (id, user_id, total_amount, shipping_address, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING
`
	tag, err := tx.Exec(ctx, insertOrder, o.ID, o.UserID, o.TotalAmount, o.ShippingAddress, string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil || tag.RowsAffected() == 0 {
		return 0, err
	}

	const insertItem = `
INSERT INTO order_items (id, order_id, product_id, quantity, size, price_at_time, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING
`
	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, insertItem, it.ID, o.ID, it.ProductID, it.Quantity, string(it.Size), it.PriceAtTime, it.CreatedAt); err != nil {
			return 0, fmt.Errorf("item %s: %w", it.ID, err)
		}
	}
	return 1, nil
}

func insertAddress(ctx context.Context, tx pgx.Tx, a domain.Address) (int, error) {
	const q = `
INSERT INTO addresses (id, user_id, street, city, state, postal_code, is_default, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT DO NOTHING
`
	tag, err := tx.Exec(ctx, q, a.ID, a.UserID, a.Street, a.City, a.State, a.PostalCode, a.IsDefault, a.CreatedAt, a.UpdatedAt)
	return int(tag.RowsAffected()), err
}
