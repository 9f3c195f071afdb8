// Package view renders the server-side profile pages. The two page shapes
// are distinct types dispatched to distinct render functions, so handlers
// never branch on template names.
package view

import (
	"embed"
	htmpl "html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"confsite/internal/application"
	"confsite/internal/domain/entity"
)

//go:embed templates/*.tmpl
var fs embed.FS

// Load parses the embedded page templates for the Gin engine.
func Load() *htmpl.Template {
	return htmpl.Must(htmpl.New("pages").Funcs(htmpl.FuncMap{
		"safeHTML": func(s string) htmpl.HTML { return htmpl.HTML(s) },
	}).ParseFS(fs, "templates/*.tmpl"))
}

// PublicView is the read-only profile page, shown for /user/{login} and /me.
type PublicView struct {
	Profile          application.ProfileDTO
	Talks            []entity.Talk
	SpeakerStar      bool
	CanUpdateProfile bool
}

// EditView is the profile edit form, with raw field values and the error map.
type EditView struct {
	Login         string
	Firstname     string
	Lastname      string
	Email         string
	Company       string
	PhotoURL      string
	DescriptionFr string
	DescriptionEn string
	Slots         []application.LinkSlot
	Errors        application.ValidationErrors
	HasErrors     bool
}

func RenderPublic(c *gin.Context, v PublicView) {
	c.HTML(http.StatusOK, "user.tmpl", v)
}

func RenderEdit(c *gin.Context, v EditView) {
	status := http.StatusOK
	if v.HasErrors {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "profile.tmpl", v)
}
