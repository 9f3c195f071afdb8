package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"confsite/internal/application"
	"confsite/pkg/helpers"
)

// Auth validates the session cookie and ensures an active session exists in
// Redis with a matching session id. On success it sets userLogin, userEmail
// and userRole in the Gin context. A missing or stale session is a hard 401;
// there is no anonymous fallback on session-bound routes.
func Auth(rdb *redis.Client, sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := sessions.Parse(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		key := application.SessionKey(claims.Login)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("userLogin", data["login"])
		c.Set("userEmail", data["email"])
		c.Set("userRole", data["role"])
		c.Next()
	}
}
