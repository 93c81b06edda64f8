package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const selectColumns = `id, name, description, price, original_price, is_sale, category, images, sizes, stock_quantity, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("product_repo")}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list products rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("list products", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products WHERE id = $1`
	p, err := Scan(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get product", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Upsert inserts or replaces a product keyed by id. An empty id gets a
// generated one.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price, original_price, is_sale, category, images, sizes, stock_quantity, created_at, updated_at)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, $7, $8, $9, $10,
        COALESCE($11, NOW()), COALESCE($12, NOW()))
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    is_sale = EXCLUDED.is_sale,
    category = EXCLUDED.category,
    images = EXCLUDED.images,
    sizes = EXCLUDED.sizes,
    stock_quantity = EXCLUDED.stock_quantity,
    updated_at = NOW()
RETURNING ` + selectColumns

	res, err := Scan(r.pool.QueryRow(ctx, q,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.IsSale,
		string(p.Category),
		nonNil(p.Images),
		sizeStrings(p.Sizes),
		p.StockQuantity,
		nullTime(p.CreatedAt),
		nullTime(p.UpdatedAt),
	))
	if err != nil {
		r.logger.Error("upsert product", zap.String("id", p.ID), zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("upserted product", zap.String("id", res.ID))
	return res, nil
}

// Scan reads a product row selected with the canonical column order.
func Scan(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	dest, finish := Fields(&p)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	finish()
	return &p, nil
}

// Fields returns scan destinations matching ColumnsAs. finish must run after a
// successful Scan to convert array and enum columns into p.
func Fields(p *domain.Product) ([]any, func()) {
	var (
		category string
		sizes    []string
	)
	dest := []any{
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.IsSale,
		&category, &p.Images, &sizes, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	}
	return dest, func() {
		p.Category = domain.Category(category)
		p.Sizes = make([]domain.Size, 0, len(sizes))
		for _, s := range sizes {
			p.Sizes = append(p.Sizes, domain.Size(s))
		}
		if p.Images == nil {
			p.Images = []string{}
		}
	}
}

// ColumnsAs lists the canonical product columns qualified with alias.
func ColumnsAs(alias string) string {
	cols := strings.Split(selectColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

func sizeStrings(sizes []domain.Size) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, string(s))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
