package router

import "github.com/gin-gonic/gin"

// Module registers one resource's routes. rg is mounted at the engine root,
// so a module owns its full path prefix (/users, /tasks).
type Module interface {
	Register(rg *gin.RouterGroup)
}
