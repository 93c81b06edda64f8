package domain

import (
	"slices"
	"time"
)

// Category is the closed set of catalog departments.
type Category string

const (
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryAccessories Category = "accessories"
)

// Valid reports whether c is one of the known departments.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryAccessories:
		return true
	}
	return false
}

// Size is a garment size. Apparel uses the standard letters; accessories and
// footwear may carry free-form tokens such as "One Size" or "42".
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Standard reports whether s is one of the letter sizes.
func (s Size) Standard() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"original_price,omitempty"`
	IsSale        bool      `json:"is_sale"`
	Category      Category  `json:"category"`
	Images        []string  `json:"images"`
	Sizes         []Size    `json:"sizes"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PrimaryImage returns the first image, which the storefront treats as the cover.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) HasSize(s Size) bool {
	return slices.Contains(p.Sizes, s)
}

// SalePriceConsistent reports whether a sale product carries an original price
// at or above its current price. Products not on sale are always consistent.
func (p Product) SalePriceConsistent() bool {
	if !p.IsSale {
		return true
	}
	return p.OriginalPrice != nil && *p.OriginalPrice >= p.Price
}
