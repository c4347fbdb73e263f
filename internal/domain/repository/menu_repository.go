package repository

import (
	"context"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
)

// MenuRepository is the catalog store.
type MenuRepository interface {
	Create(ctx context.Context, m *entity.MenuItem) error
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)
	List(ctx context.Context) ([]entity.MenuItem, error)
	Update(ctx context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
