package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskdesk-api/internal/container"
	handlers "github.com/oksasatya/taskdesk-api/internal/interface/http"
	"github.com/oksasatya/taskdesk-api/internal/interface/middleware"
)

// SystemModule serves GET /health and, when enabled, GET /debug/vars.
type SystemModule struct {
	Handler      *handlers.HealthHandler
	DebugMetrics bool
}

func NewSystemModule(h *handlers.HealthHandler, debugMetrics bool) *SystemModule {
	return &SystemModule{Handler: h, DebugMetrics: debugMetrics}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)

	if m.DebugMetrics {
		// Public metrics endpoint (expvar), rate-limited per IP
		rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
}
