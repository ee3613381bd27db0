package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskdesk-api/internal/container"
	handlers "github.com/oksasatya/taskdesk-api/internal/interface/http"
	"github.com/oksasatya/taskdesk-api/internal/interface/middleware"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
)

// UserModule wires the /users routes.
// Public: POST /users/signin, POST /users/signup (unless gated)
// Protected: everything else
type UserModule struct {
	Handler       *handlers.UserHandler
	JWT           *helpers.JWTManager
	GateSignup    bool
	AuthPerMinute int
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, gateSignup bool, authPerMinute int) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, GateSignup: gateSignup, AuthPerMinute: authPerMinute}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	auth := middleware.Auth(m.JWT)

	// signin and signup get separate per-IP budgets
	limiter := middleware.RateLimit(container.GetRedis(), m.AuthPerMinute, time.Minute, middleware.KeyByIPAndPath())

	users.POST("/signin", limiter, m.Handler.Signin)
	if m.GateSignup {
		users.POST("/signup", limiter, auth, m.Handler.Signup)
	} else {
		users.POST("/signup", limiter, m.Handler.Signup)
	}

	users.GET("", auth, m.Handler.List)

	protected := users.Group("/")
	protected.Use(auth)
	{
		protected.GET("/", m.Handler.List)
		protected.GET("/user/:id", m.Handler.Get)
		protected.GET("/user/name/:name", m.Handler.SearchByName)
		protected.PUT("/edit/:id", m.Handler.Update)
		protected.DELETE("/delete/:id", m.Handler.Delete)
	}
}
