package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,description,price,original_price,category,sizes,stock_quantity,images
p-1,Linen Shirt,Breathable linen,15000,19000,Men,S;M;L,12,https://example.com/shirt-1.jpg
,,,,,,,,https://example.com/shirt-2.jpg
p-2,Canvas Tote,,8000,,accessories,One Size,5,https://example.com/tote.jpg;https://example.com/tote-2.jpg
`
	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, nil)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}

	shirt := repo.items[0]
	if shirt.ID != "p-1" || shirt.Price != 15000 || shirt.Category != domain.CategoryMen {
		t.Fatalf("unexpected product data: %+v", shirt)
	}
	if !shirt.IsSale || shirt.OriginalPrice == nil || *shirt.OriginalPrice != 19000 {
		t.Fatalf("expected sale pricing on shirt: %+v", shirt)
	}
	if len(shirt.Images) != 2 || shirt.Images[1] != "https://example.com/shirt-2.jpg" {
		t.Fatalf("expected continuation image on shirt, got %v", shirt.Images)
	}
	if len(shirt.Sizes) != 3 || shirt.StockQuantity != 12 {
		t.Fatalf("unexpected sizes/stock: %v %d", shirt.Sizes, shirt.StockQuantity)
	}

	tote := repo.items[1]
	if tote.IsSale || tote.Description != nil || len(tote.Images) != 2 {
		t.Fatalf("unexpected tote: %+v", tote)
	}
	if !tote.HasSize("One Size") {
		t.Fatalf("expected One Size, got %v", tote.Sizes)
	}
}

func TestCSVImporter_OriginalPriceNotAboveIsNoSale(t *testing.T) {
	csvData := "name,price,original_price,category,sizes\nTee,5000,5000,women,M\n"
	repo := &stubProductRepo{}
	if _, err := NewCSVImporter(strings.NewReader(csvData), repo, nil).Run(context.Background()); err != nil {
		t.Fatalf("import run: %v", err)
	}
	if repo.items[0].IsSale || repo.items[0].OriginalPrice != nil {
		t.Fatalf("expected regular price, got %+v", repo.items[0])
	}
}

func TestCSVImporter_RejectsInvalidRows(t *testing.T) {
	cases := map[string]string{
		"bad category": "name,price,category,sizes\nHat,1000,kids,M\n",
		"zero price":   "name,price,category,sizes\nHat,0,men,M\n",
		"no sizes":     "name,price,category,sizes\nHat,1000,men,\n",
		"bad stock":    "name,price,category,sizes,stock_quantity\nHat,1000,men,M,-1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCSVImporter(strings.NewReader(data), &stubProductRepo{}, nil).Run(context.Background())
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCSVImporter_OrphanImageRow(t *testing.T) {
	csvData := "name,images\n,https://example.com/a.jpg\n"
	if _, err := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{}, nil).Run(context.Background()); err == nil {
		t.Fatalf("expected error for image row without product")
	}
}

func TestCSVImporter_MissingNameHeader(t *testing.T) {
	if _, err := NewCSVImporter(strings.NewReader("id,price\n1,2\n"), &stubProductRepo{}, nil).Run(context.Background()); err == nil {
		t.Fatalf("expected header error")
	}
}
