package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
	"github.com/oksasatya/taskdesk-api/pkg/response"
)

type HealthHandler struct {
	Store  repository.Store
	Driver string
	Logger *logrus.Logger
}

func NewHealthHandler(store repository.Store, driver string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Store: store, Driver: driver, Logger: logger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		helpers.LogError(h.Logger, "store ping failed", err, logrus.Fields{"driver": h.Driver})
		response.Error[any](c, http.StatusServiceUnavailable, "store unreachable", gin.H{"store": h.Driver})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"store": h.Driver}, "ok", nil)
}
