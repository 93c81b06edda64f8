package address

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository/repotest"
)

func TestPostgres_DefaultAddress(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)

	first, err := repo.Create(ctx, domain.Address{UserID: "u1", Street: "1 First St", City: "Lagos"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !first.IsDefault {
		t.Fatalf("first address should be default")
	}
	second, err := repo.Create(ctx, domain.Address{UserID: "u1", Street: "2 Second St", City: "Abuja"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.IsDefault {
		t.Fatalf("second address should not be default")
	}

	if err := repo.SetDefault(ctx, "u1", second.ID); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	list, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].IsDefault {
		t.Fatalf("unexpected list %+v", list)
	}

	first.City = "Ibadan"
	updated, err := repo.Update(ctx, *first)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.City != "Ibadan" || updated.IsDefault {
		t.Fatalf("unexpected update %+v", updated)
	}

	if err := repo.Delete(ctx, "u1", first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "u1", first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
