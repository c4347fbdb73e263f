package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-restaurant-orders/internal/container"
	"github.com/oksasatya/go-restaurant-orders/internal/interface/middleware"
	"github.com/oksasatya/go-restaurant-orders/pkg/response"
)

// DebugModule serves /healthz, plus /debug/vars and /metrics when Metrics is set.
type DebugModule struct {
	Metrics bool
}

func NewDebugModule(metrics bool) *DebugModule { return &DebugModule{Metrics: metrics} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "ok", nil)
	})
	if !m.Metrics {
		return
	}
	// Public metrics endpoints, rate-limited per IP; in-cluster scrapers bypass
	rl := middleware.RateLimit(container.GetRedis(), middleware.Limit{
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Allow:  middleware.AllowPrivateIP(),
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
}
