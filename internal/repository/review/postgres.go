package review

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const reviewColumns = `id, user_id, product_id, rating, comment, is_verified_purchase, user_name, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("review_repo")}
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		r.logger.Error("list reviews", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	q := `
INSERT INTO reviews (user_id, product_id, rating, comment, is_verified_purchase, user_name)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + reviewColumns
	created, err := scanReview(r.pool.QueryRow(ctx, q, rv.UserID, rv.ProductID, rv.Rating, rv.Comment, rv.IsVerifiedPurchase, rv.UserName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrAlreadyExists
			case "23503":
				return nil, domain.ErrNotFound
			}
		}
		r.logger.Error("create review", zap.String("product_id", rv.ProductID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	q := `
UPDATE reviews SET rating = $3, comment = $4, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING ` + reviewColumns
	updated, err := scanReview(r.pool.QueryRow(ctx, q, rv.ID, rv.UserID, rv.Rating, rv.Comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("update review", zap.String("id", rv.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.IsVerifiedPurchase, &rv.UserName, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}
