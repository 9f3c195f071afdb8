package modules

import (
	"github.com/gin-gonic/gin"

	"confsite/internal/container"
	handlers "confsite/internal/interface/http"
	"confsite/internal/interface/middleware"
)

// ProfileModule wires the server-rendered profile pages.
// Public: GET /user/{identifier}
// Session-bound: GET /me, GET /profile/edit, POST /profile, POST /profile/avatar
type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(engine *gin.Engine, _ *gin.RouterGroup) {
	engine.GET("/user/:identifier", m.Handler.PublicProfile)

	auth := engine.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), container.GetSessions()))
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/profile/edit", m.Handler.EditProfile)
		auth.POST("/profile", m.Handler.SaveProfile)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
