package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-restaurant-orders/internal/container"
	handlers "github.com/oksasatya/go-restaurant-orders/internal/interface/http"
	"github.com/oksasatya/go-restaurant-orders/internal/interface/middleware"
)

// OrderModule wires the protected order endpoints behind JWTAuth.
// Protected: POST /order, GET /orders
type OrderModule struct {
	Handler  *handlers.OrderHandler
	Verifier middleware.TokenVerifier
}

func NewOrderModule(h *handlers.OrderHandler, v middleware.TokenVerifier) *OrderModule {
	return &OrderModule{Handler: h, Verifier: v}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.JWTAuth(m.Verifier))
	auth.Use(middleware.RateLimit(container.GetRedis(), middleware.PerMinute(120, middleware.KeyByIdentity())))
	{
		auth.POST("/order", middleware.RateLimit(container.GetRedis(), middleware.PerMinute(30, middleware.KeyByIdentity())), m.Handler.PlaceOrder)
		auth.GET("/orders", m.Handler.ListOrders)
	}
}
