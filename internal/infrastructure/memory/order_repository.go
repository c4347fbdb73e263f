package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
)

// OrderRepository keeps orders in insertion order and expands menu
// references against Menu when listing.
type OrderRepository struct {
	Menu repository.MenuRepository

	mu     sync.RWMutex
	orders []entity.Order
}

func NewOrderRepository(menu repository.MenuRepository) *OrderRepository {
	return &OrderRepository{Menu: menu}
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	stored := *o
	stored.Items = append([]entity.OrderItem(nil), o.Items...)
	r.orders = append(r.orders, stored)
	return nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	r.mu.RLock()
	owned := make([]entity.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			o := r.orders[i]
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			owned = append(owned, o)
		}
	}
	r.mu.RUnlock()

	for i := range owned {
		for j := range owned[i].Items {
			it := &owned[i].Items[j]
			m, err := r.Menu.GetByID(ctx, it.MenuItemID)
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			it.MenuItem = m
		}
	}
	return owned, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
