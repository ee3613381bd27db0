package router

import (
	"github.com/oksasatya/taskdesk-api/internal/application"
	"github.com/oksasatya/taskdesk-api/internal/container"
	handlers "github.com/oksasatya/taskdesk-api/internal/interface/http"
	"github.com/oksasatya/taskdesk-api/internal/router/modules"
)

type ModuleDeps struct {
	Users  *handlers.UserHandler
	Tasks  *handlers.TaskHandler
	Health *handlers.HealthHandler
}

func buildDeps() ModuleDeps {
	store := container.GetStore()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userSvc := application.NewUserService(store.Users(), jwt, logger)
	taskSvc := application.NewTaskService(store.Tasks(), logger)

	return ModuleDeps{
		Users:  handlers.NewUserHandler(userSvc, jwt, logger),
		Tasks:  handlers.NewTaskHandler(taskSvc, logger),
		Health: handlers.NewHealthHandler(store, container.GetConfig().StoreDriver, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	cfg := container.GetConfig()
	jwt := container.GetJWT()

	r.Add(modules.NewSystemModule(deps.Health, cfg.DebugMetricsEnabled))
	r.Add(modules.NewUserModule(deps.Users, jwt, cfg.SignupRequiresAuth, cfg.RateLimitAuthPerMin))
	r.Add(modules.NewTaskModule(deps.Tasks, jwt))
}
