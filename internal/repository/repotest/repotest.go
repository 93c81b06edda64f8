// Package repotest wires Postgres integration tests. Tests skip when
// TEST_DB_DSN is not set.
package repotest

import (
	"context"
	"os"
	"testing"

	"storefront/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool connects to TEST_DB_DSN, applies migrations and truncates every table.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE order_items, orders, cart_items, reviews, addresses, products CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

// InsertProduct adds a minimal product row and returns its id.
func InsertProduct(t *testing.T, pool *pgxpool.Pool, name string, price int64) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
INSERT INTO products (name, price, category, images, sizes, stock_quantity)
VALUES ($1, $2, 'men', ARRAY['https://img.example/' || $1::text], ARRAY['S','M','L'], 10)
RETURNING id`, name, price).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}
