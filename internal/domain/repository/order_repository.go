package repository

import (
	"context"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
)

// OrderRepository persists orders. Create writes the order and all of its
// items or nothing. ListByUser expands each item's menu reference.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
}
