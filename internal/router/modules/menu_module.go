package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-restaurant-orders/internal/container"
	handlers "github.com/oksasatya/go-restaurant-orders/internal/interface/http"
	"github.com/oksasatya/go-restaurant-orders/internal/interface/middleware"
)

type MenuModule struct {
	Handler *handlers.MenuHandler
}

func NewMenuModule(h *handlers.MenuHandler) *MenuModule {
	return &MenuModule{Handler: h}
}

func (m *MenuModule) Register(rg *gin.RouterGroup) {
	menu := rg.Group("/menu")
	menu.Use(middleware.RateLimit(container.GetRedis(), middleware.PerMinute(300, middleware.KeyByIP())))
	{
		menu.GET("", m.Handler.List)
		menu.POST("", m.Handler.Create)
		// registered before /:id so the static segment wins
		menu.GET("/search", m.Handler.Search)
		menu.GET("/:id", m.Handler.Get)
		menu.PUT("/:id", m.Handler.Update)
		menu.DELETE("/:id", m.Handler.Delete)
		menu.POST("/:id/image", middleware.RateLimit(container.GetRedis(), middleware.PerMinute(10, middleware.KeyByIPAndPath())), m.Handler.UploadImage)
	}
}
