package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"confsite/internal/application"
	"confsite/pkg/helpers"
	"confsite/pkg/response"
	"confsite/pkg/validation"
)

// AuthHandler implements the passwordless login endpoints.
type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookieDomain string, cookieSecure bool, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: helpers.NewCookieManager(cookieDomain, cookieSecure), Logger: logger}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type confirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// RequestToken handles POST /login: emails a sign-in code. The response is
// the same whether or not the account exists.
func (h *AuthHandler) RequestToken(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if err := h.Auth.RequestLoginToken(c.Request.Context(), req.Email); err != nil && !errors.Is(err, application.ErrUserNotFound) {
		h.Logger.WithError(err).Error("login token request failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "could not send sign-in code", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, map[string]any{"sent": true}, "sign-in code sent if the account exists", nil)
	c.JSON(resp.Status, resp)
}

// Confirm handles POST /login/confirm: validates the emailed code and opens
// a session.
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	token, exp, err := h.Auth.ConfirmLogin(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid or expired sign-in code", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetSession(c, token, exp)
	resp := response.Success[any](c, http.StatusOK, map[string]any{"logged_in": true}, "logged in", map[string]any{"expires_at": exp})
	c.JSON(resp.Status, resp)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if login := c.GetString("userLogin"); login != "" {
		h.Auth.Logout(c.Request.Context(), login)
	}
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}
