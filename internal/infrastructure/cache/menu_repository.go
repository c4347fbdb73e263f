// Package cache decorates catalog lookups with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
)

func menuKey(id string) string { return "menu:item:" + id }

// genKey counts writes to one item. A fill only lands if the count is the one
// seen before the backing read.
func genKey(id string) string { return "menu:gen:" + id }

// genTTL outlives any in-flight fill by a wide margin.
const genTTL = 24 * time.Hour

// fillScript: KEYS[1] item, KEYS[2] generation; ARGV[1] expected generation,
// ARGV[2] payload, ARGV[3] ttl in ms.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// MenuRepository serves GetByID from Redis when possible and drops the
// cached entry on every write. A read that races a write is not cached.
// Redis errors fall through to the wrapped repository.
//
// Writers that bypass this type are only seen after the TTL, so callers that
// must observe the live catalog use the wrapped repository directly.
type MenuRepository struct {
	next   repository.MenuRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewMenuRepository(next repository.MenuRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) repository.MenuRepository {
	if rdb == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &MenuRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *MenuRepository) Create(ctx context.Context, m *entity.MenuItem) error {
	return r.next.Create(ctx, m)
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	var cached entity.MenuItem
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, menuKey(id), &cached)
	if err != nil {
		r.logger.WithError(err).WithField("menu_item_id", id).Warn("menu cache read failed")
		return r.next.GetByID(ctx, id)
	}
	if hit {
		return &cached, nil
	}

	gen, err := r.rdb.Get(ctx, genKey(id)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		gen = "0"
	case err != nil:
		r.logger.WithError(err).WithField("menu_item_id", id).Warn("menu cache read failed")
		return r.next.GetByID(ctx, id)
	}

	m, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.fill(ctx, id, gen, m); err != nil {
		r.logger.WithError(err).WithField("menu_item_id", id).Warn("menu cache write failed")
	}
	return m, nil
}

func (r *MenuRepository) fill(ctx context.Context, id, gen string, m *entity.MenuItem) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return fillScript.Run(ctx, r.rdb, []string{menuKey(id), genKey(id)}, gen, b, r.ttl.Milliseconds()).Err()
}

func (r *MenuRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	return r.next.List(ctx)
}

func (r *MenuRepository) Update(ctx context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error) {
	m, err := r.next.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return m, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *MenuRepository) evict(ctx context.Context, id string) {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(id))
		p.Expire(ctx, genKey(id), genTTL)
		return helpers.RedisDel(ctx, p, menuKey(id))
	})
	if err != nil {
		r.logger.WithError(err).WithField("menu_item_id", id).Warn("menu cache evict failed")
	}
}

var _ repository.MenuRepository = (*MenuRepository)(nil)
