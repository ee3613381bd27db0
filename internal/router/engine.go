package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/config"
	"github.com/oksasatya/taskdesk-api/internal/interface/middleware"
	"github.com/oksasatya/taskdesk-api/pkg/response"
	"github.com/oksasatya/taskdesk-api/pkg/validation"
)

// NewEngine builds the Gin engine with the global middleware chain.
func NewEngine(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(middleware.ErrorResponder(logger))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins()
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", gin.H{"path": c.Request.URL.Path})
	})
	return r
}
