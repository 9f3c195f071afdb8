package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes. Page routes
// go on the engine, JSON routes on the /api group.
type Module interface {
	Register(engine *gin.Engine, api *gin.RouterGroup)
}
