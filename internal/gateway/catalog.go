package gateway

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// ListProducts returns the catalog narrowed and ordered by spec. Filtering
// runs in process for both sources so fallback output matches mock output.
func (g *Gateway) ListProducts(ctx context.Context, spec catalog.FilterSpec) (Result[[]domain.Product], error) {
	return read(ctx, g, "ListProducts", func(s Store) ([]domain.Product, error) {
		all, err := s.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.Apply(all, spec), nil
	})
}

// FeaturedProducts returns the newest in-stock products.
func (g *Gateway) FeaturedProducts(ctx context.Context) (Result[[]domain.Product], error) {
	return read(ctx, g, "FeaturedProducts", func(s Store) ([]domain.Product, error) {
		all, err := s.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.Featured(all, g.featuredLimit), nil
	})
}

func (g *Gateway) GetProduct(ctx context.Context, id string) (Result[*domain.Product], error) {
	return read(ctx, g, "GetProduct", func(s Store) (*domain.Product, error) {
		return s.GetProduct(ctx, id)
	})
}
