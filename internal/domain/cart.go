package domain

import "time"

// MaxLineQuantity caps the units on a single cart line.
const MaxLineQuantity = 99

// CartItem is one (user, product, size) line. Product is populated on reads.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Size      Size      `json:"size"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineTotal is the current product price times quantity, or zero when the
// product was not loaded.
func (c CartItem) LineTotal() int64 {
	if c.Product == nil {
		return 0
	}
	return c.Product.Price * int64(c.Quantity)
}

// CartTotal sums the line totals of items.
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
