package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("cart_repo")}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	q := `
SELECT c.id, c.user_id, c.product_id, c.size, c.quantity, c.created_at, c.updated_at, ` + product.ColumnsAs("p") + `
FROM cart_items c
JOIN products p ON p.id = c.product_id
WHERE c.user_id = $1
ORDER BY c.created_at, c.id
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list cart", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		item, err := scanItemWithProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list cart rows", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const q = `SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE user_id = $1`
	var count int
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&count); err != nil {
		r.logger.Error("count cart", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// AddItem upserts the (user, product, size) line, adding quantity to an
// existing line. An add that would push the line past domain.MaxLineQuantity
// is rejected.
func (r *postgresRepo) AddItem(ctx context.Context, userID, productID string, size domain.Size, quantity int) (*domain.CartItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p, err := product.Scan(tx.QueryRow(ctx, `SELECT `+product.ColumnsAs("p")+` FROM products p WHERE p.id = $1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const upsert = `
INSERT INTO cart_items (user_id, product_id, size, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id, size) DO UPDATE SET
    quantity = cart_items.quantity + EXCLUDED.quantity,
    updated_at = NOW()
WHERE cart_items.quantity + EXCLUDED.quantity <= $5
RETURNING id, user_id, product_id, size, quantity, created_at, updated_at
`
	var (
		item     domain.CartItem
		itemSize string
	)
	if err := tx.QueryRow(ctx, upsert, userID, productID, string(size), quantity, domain.MaxLineQuantity).Scan(
		&item.ID, &item.UserID, &item.ProductID, &itemSize, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: line would exceed %d units", domain.ErrInvalidInput, domain.MaxLineQuantity)
		}
		r.logger.Error("add cart item", zap.String("user_id", userID), zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	item.Size = domain.Size(itemSize)
	item.Product = p
	r.logger.Debug("cart item upserted", zap.String("id", item.ID), zap.Int("quantity", item.Quantity))
	return &item, nil
}

func (r *postgresRepo) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, itemID)
	}
	const q = `UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, q, itemID, userID, quantity)
	if err != nil {
		r.logger.Error("set cart quantity", zap.String("id", itemID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, itemID string) error {
	const q = `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, q, itemID, userID)
	if err != nil {
		r.logger.Error("remove cart item", zap.String("id", itemID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItemWithProduct(row pgx.Row) (*domain.CartItem, error) {
	var (
		item domain.CartItem
		size string
		p    domain.Product
	)
	pdest, finish := product.Fields(&p)
	dest := append([]any{
		&item.ID, &item.UserID, &item.ProductID, &size, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	}, pdest...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	finish()
	item.Size = domain.Size(size)
	item.Product = &p
	return &item, nil
}
