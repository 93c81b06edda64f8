package catalog

import (
	"cmp"
	"slices"
	"strings"

	"storefront/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply filters products by spec and returns them in spec order. The input
// slice is never modified; the result is always a fresh slice.
func Apply(products []domain.Product, spec FilterSpec) []domain.Product {
	search := strings.ToLower(spec.Search)
	category := spec.categoryMatcher()
	price := spec.priceMatcher()

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if !inPriceRange(p.Price, price) {
			continue
		}
		if !matchesSale(p.IsSale, spec.OnSale) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, spec.SortBy)
	return out
}

// Featured returns up to n in-stock products, newest first.
func Featured(products []domain.Product, n int) []domain.Product {
	sorted := Apply(products, DefaultFilter())
	out := make([]domain.Product, 0, min(n, len(sorted)))
	for _, p := range sorted {
		if len(out) >= n {
			break
		}
		if p.StockQuantity <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
}

func inPriceRange(price int64, r PriceRange) bool {
	switch r {
	case PriceUnder20k:
		return price < lowerPriceBound
	case Price20kTo50k:
		return price >= lowerPriceBound && price <= upperPriceBound
	case PriceOver50k:
		return price > upperPriceBound
	}
	return true
}

func matchesSale(isSale bool, f SaleFilter) bool {
	switch f {
	case SaleOnly:
		return isSale
	case SaleExcluded:
		return !isSale
	}
	return true
}

func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortName:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(language.English)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
