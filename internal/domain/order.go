package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Progression is one-way; cancellation is only possible before shipping.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"order_items"`
	TotalAmount     int64       `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	Status          OrderStatus `json:"status"`
	IdempotencyKey  string      `json:"-"`
	// Replayed is set when the store returned an order an earlier request with
	// the same idempotency key already created.
	Replayed        bool        `json:"-"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem freezes the price paid at checkout in PriceAtTime.
type OrderItem struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	ProductID    string    `json:"product_id"`
	Quantity     int       `json:"quantity"`
	Size         Size      `json:"size"`
	PriceAtTime  int64     `json:"price_at_time"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductImage string    `json:"product_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewOrderItems snapshots cart lines into order items, copying the current
// product price. Lines without a loaded product are skipped.
func NewOrderItems(cart []CartItem) []OrderItem {
	items := make([]OrderItem, 0, len(cart))
	for _, c := range cart {
		if c.Product == nil {
			continue
		}
		items = append(items, OrderItem{
			ProductID:    c.ProductID,
			Quantity:     c.Quantity,
			Size:         c.Size,
			PriceAtTime:  c.Product.Price,
			ProductName:  c.Product.Name,
			ProductImage: c.Product.PrimaryImage(),
		})
	}
	return items
}
