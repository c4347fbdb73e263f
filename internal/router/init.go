package router

import (
	"github.com/oksasatya/go-restaurant-orders/internal/application"
	"github.com/oksasatya/go-restaurant-orders/internal/container"
	repo "github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
	"github.com/oksasatya/go-restaurant-orders/internal/infrastructure/cache"
	"github.com/oksasatya/go-restaurant-orders/internal/infrastructure/memory"
	"github.com/oksasatya/go-restaurant-orders/internal/infrastructure/objectstore"
	pginfra "github.com/oksasatya/go-restaurant-orders/internal/infrastructure/postgres"
	"github.com/oksasatya/go-restaurant-orders/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-restaurant-orders/internal/interface/http"
	"github.com/oksasatya/go-restaurant-orders/internal/router/modules"
)

type repositories struct {
	Users  repo.UserRepository
	Menu   repo.MenuRepository // cached when Redis is set
	Live   repo.MenuRepository // always reads the store
	Orders repo.OrderRepository
}

// buildRepositories picks the storage driver from config. Order placement
// resolves against Live so a price change or delete is seen at once.
func buildRepositories() repositories {
	cfg := container.GetConfig()
	var rs repositories
	if cfg.StorageDriver == "memory" || container.GetPGPool() == nil {
		menu := memory.NewMenuRepository()
		rs = repositories{
			Users:  memory.NewUserRepository(),
			Menu:   menu,
			Orders: memory.NewOrderRepository(menu),
		}
	} else {
		pool := container.GetPGPool()
		rs = repositories{
			Users:  pginfra.NewUserRepository(pool),
			Menu:   pginfra.NewMenuRepository(pool),
			Orders: pginfra.NewOrderRepository(pool),
		}
	}
	rs.Live = rs.Menu
	rs.Menu = cache.NewMenuRepository(rs.Live, container.GetRedis(), cfg.MenuCacheTTL, container.GetLogger())
	return rs
}

// optional integrations are left as untyped nil interfaces when disabled
func buildIntegrations() (application.EventPublisher, application.MenuSearcher, application.ImageStore) {
	cfg := container.GetConfig()
	var (
		events   application.EventPublisher
		searcher application.MenuSearcher
		images   application.ImageStore
	)
	if p := container.GetRabbitPub(); p != nil {
		events = p
	}
	if es := container.GetES(); es != nil {
		searcher = search.NewMenuIndex(es, cfg.ESMenuIndex)
	}
	if g := container.GetGCS(); g != nil && cfg.GCSBucket != "" {
		images = objectstore.NewGCSStore(g, cfg.GCSBucket)
	}
	return events, searcher, images
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	logger := container.GetLogger()
	jwt := container.GetJWT()
	rs := buildRepositories()
	events, searcher, images := buildIntegrations()

	authSvc := application.NewAuthService(rs.Users, jwt, logger)
	orderSvc := application.NewOrderService(rs.Live, rs.Orders, events, logger)
	menuSvc := application.NewMenuService(rs.Menu, searcher, images, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), jwt))
	r.Add(modules.NewMenuModule(handlers.NewMenuHandler(menuSvc, logger)))
	r.Add(modules.NewDebugModule(container.GetConfig().DebugMetricsEnabled))
}
