package entity

import "time"

type OrderStatus string

// StatusPending is the only status an order takes in this service.
const StatusPending OrderStatus = "Pending"

// Order is owned by exactly one user. TotalAmount is frozen at creation.
type Order struct {
	ID          string
	UserID      string
	Items       []OrderItem
	TotalAmount float64
	Status      OrderStatus
	CreatedAt   time.Time
}

// OrderItem references a menu item by id. UnitPrice is the catalog price
// observed when the order was placed.
type OrderItem struct {
	MenuItemID string
	Quantity   int
	UnitPrice  float64

	// MenuItem is the referenced item's current catalog data, set only when
	// listing. Nil when the item no longer exists.
	MenuItem *MenuItem
}
