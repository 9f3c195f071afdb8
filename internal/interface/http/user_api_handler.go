package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"confsite/internal/application"
	"confsite/pkg/response"
	"confsite/pkg/validation"
)

// UserAPIHandler serves the JSON user API.
type UserAPIHandler struct {
	Users    *application.UserService
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewUserAPIHandler(users *application.UserService, profiles *application.ProfileService, logger *logrus.Logger) *UserAPIHandler {
	return &UserAPIHandler{Users: users, Profiles: profiles, Logger: logger}
}

// Get handles GET /api/user/{login}.
func (h *UserAPIHandler) Get(c *gin.Context) {
	dto, err := h.Users.FindOne(c.Request.Context(), c.Param("login"))
	if err != nil {
		resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, dto, "user", nil)
	c.JSON(resp.Status, resp)
}

// List handles GET /api/user.
func (h *UserAPIHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "list users failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, users, "users", map[string]any{"count": len(users)})
	c.JSON(resp.Status, resp)
}

// Staff handles GET /api/staff.
func (h *UserAPIHandler) Staff(c *gin.Context) {
	users, err := h.Users.ListStaff(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list staff failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "list staff failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, users, "staff", map[string]any{"count": len(users)})
	c.JSON(resp.Status, resp)
}

// StaffOne handles GET /api/staff/{login}: staff or staff-in-pause only.
func (h *UserAPIHandler) StaffOne(c *gin.Context) {
	dto, err := h.Users.FindStaff(c.Request.Context(), c.Param("login"))
	if err != nil {
		resp := response.Error[any](c, http.StatusNotFound, "staff member not found", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, dto, "staff member", nil)
	c.JSON(resp.Status, resp)
}

// Create handles POST /api/user.
func (h *UserAPIHandler) Create(c *gin.Context) {
	var in application.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	dto, err := h.Users.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, application.ErrLoginTaken) {
			resp := response.Error[any](c, http.StatusConflict, "login already taken", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).WithField("login", in.Login).Error("create user failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "create user failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	c.Header("Location", "/api/user/"+dto.Login)
	resp := response.Success(c, http.StatusCreated, dto, "user created", nil)
	c.JSON(resp.Status, resp)
}

// Search handles GET /api/user/search?q=&size=.
func (h *UserAPIHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Profiles.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
	c.JSON(resp.Status, resp)
}
