package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"confsite/internal/container"
	handlers "confsite/internal/interface/http"
	"confsite/internal/interface/middleware"
)

// AuthModule wires the passwordless login endpoints.
// Public: POST /login, POST /login/confirm
// Session-bound: POST /logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(engine *gin.Engine, _ *gin.RouterGroup) {
	requestLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	confirmLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

	engine.POST("/login", requestLimiter, m.Handler.RequestToken)
	engine.POST("/login/confirm", confirmLimiter, m.Handler.Confirm)

	auth := engine.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetSessions()))
	auth.POST("/logout", m.Handler.Logout)
}
