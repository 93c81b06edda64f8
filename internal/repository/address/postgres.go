package address

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const addressColumns = `id, user_id, street, city, state, postal_code, is_default, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("address_repo")}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	q := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list addresses", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []domain.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Create inserts an address. The user's first address becomes the default,
// and a new default clears the flag on the others.
func (r *postgresRepo) Create(ctx context.Context, a domain.Address) (*domain.Address, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var existing int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, a.UserID).Scan(&existing); err != nil {
		return nil, err
	}
	if existing == 0 {
		a.IsDefault = true
	}
	if a.IsDefault {
		if err := clearDefault(ctx, tx, a.UserID); err != nil {
			return nil, err
		}
	}

	q := `
INSERT INTO addresses (user_id, street, city, state, postal_code, is_default)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + addressColumns
	created, err := scanAddress(tx.QueryRow(ctx, q, a.UserID, a.Street, a.City, a.State, a.PostalCode, a.IsDefault))
	if err != nil {
		r.logger.Error("create address", zap.String("user_id", a.UserID), zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, a domain.Address) (*domain.Address, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if err := clearDefault(ctx, tx, a.UserID); err != nil {
			return nil, err
		}
	}
	q := `
UPDATE addresses
SET street = $3, city = $4, state = $5, postal_code = $6, is_default = is_default OR $7, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING ` + addressColumns
	updated, err := scanAddress(tx.QueryRow(ctx, q, a.ID, a.UserID, a.Street, a.City, a.State, a.PostalCode, a.IsDefault))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("update address", zap.String("id", a.ID), zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("delete address", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetDefault(ctx context.Context, userID, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := clearDefault(ctx, tx, userID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE addresses SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("set default address", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

func clearDefault(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default`, userID)
	return err
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	if err := row.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
