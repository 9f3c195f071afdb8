package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"confsite/internal/application"
	"confsite/internal/domain/entity"
	"confsite/internal/interface/view"
)

// ProfileHandler serves the server-rendered profile pages.
type ProfileHandler struct {
	Profiles *application.ProfileService
	Users    *application.UserService
	Logger   *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, users *application.UserService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Users: users, Logger: logger}
}

func requestLanguage(c *gin.Context) entity.Language {
	if c.Query("lang") == "fr" {
		return entity.French
	}
	return entity.English
}

// PublicProfile handles GET /user/{identifier}. The identifier is either a
// numeric legacy id or a login.
func (h *ProfileHandler) PublicProfile(c *gin.Context) {
	u, err := h.Profiles.FindByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		c.String(http.StatusNotFound, "user not found")
		return
	}
	h.renderPublic(c, u, false)
}

// Me handles GET /me: the visitor's own profile, with the edit affordance.
func (h *ProfileHandler) Me(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.renderPublic(c, u, true)
}

// EditProfile handles GET /profile/edit.
func (h *ProfileHandler) EditProfile(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	view.RenderEdit(c, view.EditView{
		Login:         u.Login,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Email:         h.Profiles.DecryptEmail(u),
		Company:       u.Company,
		PhotoURL:      u.PhotoURL,
		DescriptionFr: u.Description[entity.French],
		DescriptionEn: u.Description[entity.English],
		Slots:         application.ToLinkSlots(u.Links),
	})
}

// SaveProfile handles POST /profile. A clean validation pass persists and
// redirects to /me; any error re-renders the form with the submitted values
// prefilled and the error map attached.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "malformed form")
		return
	}
	form := application.ParseProfileForm(c.Request.PostForm)

	candidate, errs, err := h.Profiles.SaveProfile(c.Request.Context(), u, form)
	if err != nil {
		h.Logger.WithError(err).WithField("login", u.Login).Error("profile save failed")
		c.String(http.StatusInternalServerError, "profile save failed")
		return
	}
	if len(errs) > 0 {
		view.RenderEdit(c, view.EditView{
			Login:         candidate.Login,
			Firstname:     candidate.Firstname,
			Lastname:      candidate.Lastname,
			Email:         form.Email,
			Company:       candidate.Company,
			PhotoURL:      candidate.PhotoURL,
			DescriptionFr: candidate.Description[entity.French],
			DescriptionEn: candidate.Description[entity.English],
			Slots:         application.ToLinkSlots(candidate.Links),
			Errors:        errs,
			HasErrors:     true,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/me")
}

// UploadAvatar handles POST /profile/avatar (multipart).
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.String(http.StatusBadRequest, "missing photo")
		return
	}
	defer func() { _ = file.Close() }()

	_, err = h.Users.UploadAvatar(c.Request.Context(), u, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).WithField("login", u.Login).Error("avatar upload failed")
		c.String(http.StatusInternalServerError, "avatar upload failed")
		return
	}
	c.Redirect(http.StatusSeeOther, "/me")
}

// currentUser resolves the session identity. The auth middleware guarantees
// the email attribute; a user row missing for it is still a hard failure.
func (h *ProfileHandler) currentUser(c *gin.Context) (*entity.User, bool) {
	email := c.GetString("userEmail")
	if email == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return nil, false
	}
	u, err := h.Profiles.FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return nil, false
	}
	return u, true
}

func (h *ProfileHandler) renderPublic(c *gin.Context, u *entity.User, canUpdate bool) {
	email := h.Profiles.DecryptEmail(u)
	talks, err := h.Profiles.TalksFor(c.Request.Context(), u.Login)
	if err != nil {
		h.Logger.WithError(err).WithField("login", u.Login).Warn("loading talks failed")
	}
	view.RenderPublic(c, view.PublicView{
		Profile:          application.ToProfileDTO(u, requestLanguage(c), email),
		Talks:            talks,
		SpeakerStar:      application.IsSpeakerStar(u, email),
		CanUpdateProfile: canUpdate,
	})
}
