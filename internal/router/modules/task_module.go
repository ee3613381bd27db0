package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/taskdesk-api/internal/interface/http"
	"github.com/oksasatya/taskdesk-api/internal/interface/middleware"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
)

// TaskModule wires the /tasks routes, all behind the bearer token gate.
type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.Use(middleware.Auth(m.JWT))
	{
		tasks.GET("", m.Handler.List)
		tasks.GET("/", m.Handler.List)
		tasks.GET("/task/:id", m.Handler.Get)
		tasks.GET("/task/client/:clientName", m.Handler.SearchByClientName)
		tasks.POST("/create", m.Handler.Create)
		tasks.PUT("/edit/:id", m.Handler.Update)
		tasks.DELETE("/delete/:id", m.Handler.Delete)
	}
}
