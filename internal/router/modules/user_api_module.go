package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"confsite/internal/container"
	handlers "confsite/internal/interface/http"
	"confsite/internal/interface/middleware"
)

// UserAPIModule wires the JSON user API under /api.
type UserAPIModule struct {
	Handler *handlers.UserAPIHandler
}

func NewUserAPIModule(h *handlers.UserAPIHandler) *UserAPIModule {
	return &UserAPIModule{Handler: h}
}

func (m *UserAPIModule) Register(_ *gin.Engine, api *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

	// The search route must be registered before the :login param route.
	api.GET("/user/search", m.Handler.Search)
	api.GET("/user", m.Handler.List)
	api.GET("/user/:login", m.Handler.Get)
	api.POST("/user", createLimiter, m.Handler.Create)
	api.GET("/staff", m.Handler.Staff)
	api.GET("/staff/:login", m.Handler.StaffOne)
}
