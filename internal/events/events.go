// Package events carries order notifications over Kafka: outbound
// order_created events and inbound fulfillment status updates.
package events

import (
	"time"

	"storefront/internal/domain"
)

const TypeOrderCreated = "order_created"

type OrderEvent struct {
	Type        string      `json:"type"`
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	TotalAmount int64       `json:"total_amount"`
	Items       []EventItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

type EventItem struct {
	ProductID   string      `json:"product_id"`
	Quantity    int         `json:"quantity"`
	Size        domain.Size `json:"size"`
	PriceAtTime int64       `json:"price_at_time"`
}

// StatusUpdate is published by the fulfillment system when an order moves.
type StatusUpdate struct {
	OrderID string             `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

func newOrderEvent(o domain.Order) OrderEvent {
	items := make([]EventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, EventItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			Size:        it.Size,
			PriceAtTime: it.PriceAtTime,
		})
	}
	return OrderEvent{
		Type:        TypeOrderCreated,
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}
