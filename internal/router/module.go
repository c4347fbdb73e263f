package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (auth, orders, menu, debug) that mounts its
// routes and per-route middleware on the registry's API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
