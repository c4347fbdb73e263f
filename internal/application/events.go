package application

import (
	"context"
	"time"
)

const EventOrderPlaced = "order.placed"

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, body any) error
}

type OrderPlacedItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type OrderPlacedPayload struct {
	OrderID     string            `json:"order_id"`
	UserID      string            `json:"user_id"`
	Items       []OrderPlacedItem `json:"items"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
	OccurredAt  time.Time         `json:"occurred_at"`
}
