package review

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository/repotest"
)

func TestPostgres_OneReviewPerUser(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)
	productID := repotest.InsertProduct(t, pool, "bag", 9000)

	created, err := repo.Create(ctx, domain.Review{UserID: "u1", ProductID: productID, Rating: 5, Comment: "Love it", UserName: "Ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Review{UserID: "u1", ProductID: productID, Rating: 1}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := repo.Create(ctx, domain.Review{UserID: "u1", ProductID: "missing", Rating: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	created.Rating = 4
	created.Comment = "Still good"
	updated, err := repo.Update(ctx, *created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 4 || updated.Comment != "Still good" {
		t.Fatalf("unexpected review %+v", updated)
	}
	created.UserID = "intruder"
	if _, err := repo.Update(ctx, *created); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-author, got %v", err)
	}

	list, err := repo.ListByProduct(ctx, productID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByProduct = %+v, %v", list, err)
	}
}
