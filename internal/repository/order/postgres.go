package order

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const orderColumns = `id, user_id, total_amount, shipping_address, status, COALESCE(idempotency_key, ''), created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("order_repo")}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list orders", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, *o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := loadItems(ctx, r.pool, ids)
	if err != nil {
		r.logger.Error("list order items", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	for i := range orders {
		if its, ok := items[orders[i].ID]; ok {
			orders[i].Items = its
		}
	}
	return orders, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := loadItems(ctx, r.pool, []string{o.ID})
	if err != nil {
		return nil, err
	}
	if its, ok := items[o.ID]; ok {
		o.Items = its
	}
	return o, nil
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	insertOrder := `
INSERT INTO orders (user_id, total_amount, shipping_address, status, idempotency_key)
VALUES ($1, $2, $3, 'pending', NULLIF($4, ''))
RETURNING ` + orderColumns
	created, err := scanOrder(tx.QueryRow(ctx, insertOrder, o.UserID, o.TotalAmount, o.ShippingAddress, o.IdempotencyKey))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The same idempotency key already produced an order.
			existing, err := r.getByIdempotencyKey(ctx, o.UserID, o.IdempotencyKey)
			if err != nil {
				return nil, err
			}
			existing.Replayed = true
			return existing, nil
		}
		r.logger.Error("insert order", zap.String("user_id", o.UserID), zap.Error(err))
		return nil, err
	}

	const insertItem = `
INSERT INTO order_items (order_id, product_id, quantity, size, price_at_time)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`
	created.Items = make([]domain.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		it.OrderID = created.ID
		if err := tx.QueryRow(ctx, insertItem, created.ID, it.ProductID, it.Quantity, string(it.Size), it.PriceAtTime).
			Scan(&it.ID, &it.CreatedAt); err != nil {
			r.logger.Error("insert order item", zap.String("order_id", created.ID), zap.String("product_id", it.ProductID), zap.Error(err))
			return nil, err
		}
		created.Items = append(created.Items, it)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		r.logger.Error("clear cart", zap.String("user_id", o.UserID), zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order created", zap.String("id", created.ID), zap.Int64("total", created.TotalAmount), zap.Int("items", len(created.Items)))
	return created, nil
}

func (r *postgresRepo) getByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	var id string
	err := r.pool.QueryRow(ctx, `SELECT id FROM orders WHERE user_id = $1 AND idempotency_key = $2`, userID, key).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, userID, id)
}

// UpdateStatus locks the order row and applies the transition if the
// lifecycle allows it.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var current string
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !domain.OrderStatus(current).CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	q := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + orderColumns
	updated, err := scanOrder(tx.QueryRow(ctx, q, id, string(status)))
	if err != nil {
		r.logger.Error("update order status", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order status changed", zap.String("id", id), zap.String("from", current), zap.String("to", string(status)))
	return updated, nil
}

func (r *postgresRepo) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM order_items oi
    JOIN orders o ON o.id = oi.order_id
    WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status <> 'cancelled'
)`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, userID, productID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func loadItems(ctx context.Context, pool *pgxpool.Pool, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.size, oi.price_at_time, oi.created_at,
       p.name, COALESCE(p.images[1], '')
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ANY($1)
ORDER BY oi.created_at, oi.id
`
	rows, err := pool.Query(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			it   domain.OrderItem
			size string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &size, &it.PriceAtTime, &it.CreatedAt,
			&it.ProductName, &it.ProductImage); err != nil {
			return nil, err
		}
		it.Size = domain.Size(size)
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingAddress, &status, &o.IdempotencyKey, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.Items = []domain.OrderItem{}
	return &o, nil
}
