package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-restaurant-orders/internal/container"
	handlers "github.com/oksasatya/go-restaurant-orders/internal/interface/http"
	"github.com/oksasatya/go-restaurant-orders/internal/interface/middleware"
)

// AuthModule wires the public credential endpoints.
// Public: POST /register, POST /login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), middleware.PerMinute(5, middleware.KeyByIP()))
	loginLimiter := middleware.RateLimit(container.GetRedis(), middleware.PerMinute(10, middleware.KeyByIP()))

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
}
