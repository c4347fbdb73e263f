package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
)

type MenuRepository struct {
	mu    sync.RWMutex
	items map[string]entity.MenuItem
	seq   int64
	order map[string]int64
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{items: map[string]entity.MenuItem{}, order: map[string]int64{}}
}

func (r *MenuRepository) Create(_ context.Context, m *entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	r.items[m.ID] = *m
	r.seq++
	r.order[m.ID] = r.seq
	return nil
}

func (r *MenuRepository) GetByID(_ context.Context, id string) (*entity.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *MenuRepository) List(_ context.Context) ([]entity.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.MenuItem, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out, nil
}

func (r *MenuRepository) Update(_ context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&m)
	m.UpdatedAt = time.Now().UTC()
	r.items[id] = m
	return &m, nil
}

func (r *MenuRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	delete(r.order, id)
	return nil
}

var _ repository.MenuRepository = (*MenuRepository)(nil)
