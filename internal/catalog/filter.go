// Package catalog narrows and orders product listings for browsing screens.
package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// CategoryFilter selects a department. CategoryAll matches every product.
type CategoryFilter string

const (
	CategoryAll         CategoryFilter = "all"
	CategoryMen         CategoryFilter = CategoryFilter(domain.CategoryMen)
	CategoryWomen       CategoryFilter = CategoryFilter(domain.CategoryWomen)
	CategoryAccessories CategoryFilter = CategoryFilter(domain.CategoryAccessories)
)

// PriceRange buckets prices in integer currency units.
type PriceRange string

const (
	PriceAll      PriceRange = "all"
	PriceUnder20k PriceRange = "under-20000"
	Price20kTo50k PriceRange = "20000-50000"
	PriceOver50k  PriceRange = "over-50000"
)

const (
	lowerPriceBound int64 = 20000
	upperPriceBound int64 = 50000
)

// SaleFilter is tri-state: any product, sale only, or full price only.
type SaleFilter int8

const (
	SaleAny SaleFilter = iota
	SaleOnly
	SaleExcluded
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// FilterSpec is the full set of listing controls. The zero value keeps every
// product in input order; unknown field values behave like their zero value.
type FilterSpec struct {
	Search     string
	Category   CategoryFilter
	PriceRange PriceRange
	OnSale     SaleFilter
	SortBy     SortKey
}

// DefaultFilter matches everything and lists newest first.
func DefaultFilter() FilterSpec {
	return FilterSpec{
		Category:   CategoryAll,
		PriceRange: PriceAll,
		OnSale:     SaleAny,
		SortBy:     SortNewest,
	}
}

// IsNoop reports whether the spec excludes nothing. Sorting is not considered.
func (f FilterSpec) IsNoop() bool {
	return f.Search == "" &&
		f.categoryMatcher() == "" &&
		f.priceMatcher() == PriceAll &&
		f.OnSale != SaleOnly && f.OnSale != SaleExcluded
}

func (f FilterSpec) categoryMatcher() domain.Category {
	c := domain.Category(f.Category)
	if !c.Valid() {
		return ""
	}
	return c
}

func (f FilterSpec) priceMatcher() PriceRange {
	switch f.PriceRange {
	case PriceUnder20k, Price20kTo50k, PriceOver50k:
		return f.PriceRange
	}
	return PriceAll
}

func ParseCategory(s string) CategoryFilter {
	c := domain.Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return CategoryFilter(c)
	}
	return CategoryAll
}

// ParsePriceRange accepts the canonical bucket names and the short
// "under-20k" style aliases used by older clients.
func ParsePriceRange(s string) PriceRange {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PriceUnder20k), "under-20k":
		return PriceUnder20k
	case string(Price20kTo50k), "20k-50k":
		return Price20kTo50k
	case string(PriceOver50k), "over-50k":
		return PriceOver50k
	}
	return PriceAll
}

func ParseSaleFilter(s string) SaleFilter {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return SaleAny
	}
	if v {
		return SaleOnly
	}
	return SaleExcluded
}

// ParseSortKey falls back to newest for anything it does not recognise.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortPriceLow), "price_asc":
		return SortPriceLow
	case string(SortPriceHigh), "price_desc":
		return SortPriceHigh
	case string(SortName):
		return SortName
	}
	return SortNewest
}

// ParseFilter reads search, category, priceRange, onSale and sortBy from
// query parameters.
func ParseFilter(q url.Values) FilterSpec {
	return FilterSpec{
		Search:     q.Get("search"),
		Category:   ParseCategory(q.Get("category")),
		PriceRange: ParsePriceRange(q.Get("priceRange")),
		OnSale:     ParseSaleFilter(q.Get("onSale")),
		SortBy:     ParseSortKey(q.Get("sortBy")),
	}
}
