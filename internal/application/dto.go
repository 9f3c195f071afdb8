package application

import (
	"fmt"
	"strings"

	"confsite/internal/domain/entity"
	"confsite/pkg/markdown"
)

// ProfileDTO is the presentation shape of a user for the public profile page.
type ProfileDTO struct {
	Login       string
	Firstname   string
	Lastname    string
	Email       string // plaintext, decrypted for display
	Company     string
	Description string // HTML, rendered for the requested language
	EmailHash   string
	PhotoURL    string
	Role        entity.Role
	Links       []entity.Link
	LogoType    string
	LogoWebpURL string
}

// LinkSlot is one of the five editable link rows on the edit form. Label is
// the 1-based group key the template uses (link1..link5).
type LinkSlot struct {
	Label string
	Name  string
	URL   string
}

// SpeakerStarDTO marks a user as belonging to a curated notable-speaker list.
type SpeakerStarDTO struct {
	Login       string
	Key         string
	DisplayName string
}

// ToProfileDTO maps a stored user to its public profile representation.
// email must already be decrypted by the caller.
func ToProfileDTO(u *entity.User, lang entity.Language, email string) ProfileDTO {
	desc := ""
	if src, ok := u.Description[lang]; ok {
		desc = markdown.ToHTML(src)
	}
	return ProfileDTO{
		Login:       u.Login,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Email:       email,
		Company:     u.Company,
		Description: desc,
		EmailHash:   u.EmailHash,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role,
		Links:       u.Links,
		LogoType:    LogoType(u.PhotoURL),
		LogoWebpURL: LogoWebpURL(u.PhotoURL),
	}
}

// LogoType derives the MIME type of an image URL from its suffix. Unknown or
// missing suffixes yield the empty string.
func LogoType(url string) string {
	switch {
	case strings.HasSuffix(url, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(url, ".png"):
		return "image/png"
	case strings.HasSuffix(url, ".jpg"):
		return "image/jpeg"
	case strings.HasSuffix(url, ".gif"):
		return "image/gif"
	default:
		return ""
	}
}

// LogoWebpURL returns the .webp variant of a .png or .jpg URL, replacing only
// the trailing extension. Other suffixes have no webp variant.
func LogoWebpURL(url string) string {
	switch {
	case strings.HasSuffix(url, ".png"):
		return strings.TrimSuffix(url, ".png") + ".webp"
	case strings.HasSuffix(url, ".jpg"):
		return strings.TrimSuffix(url, ".jpg") + ".webp"
	default:
		return ""
	}
}

// ToLinkSlots lays out a user's links over the five labeled slots of the edit
// form, padding with empty slots. A user who somehow carries more than five
// links gets one slot per link instead, unpadded.
func ToLinkSlots(links []entity.Link) []LinkSlot {
	n := entity.MaxLinks
	if len(links) > n {
		n = len(links)
	}
	slots := make([]LinkSlot, 0, n)
	for i := 0; i < n; i++ {
		slot := LinkSlot{Label: fmt.Sprintf("link%d", i+1)}
		if i < len(links) {
			slot.Name = links[i].Name
			slot.URL = links[i].URL
		}
		slots = append(slots, slot)
	}
	return slots
}

// ToSpeakerStar maps a user to its notable-speaker badge entry.
func ToSpeakerStar(u *entity.User) SpeakerStarDTO {
	return SpeakerStarDTO{
		Login:       u.Login,
		Key:         strings.ToLower(u.Lastname),
		DisplayName: u.Firstname + " " + u.Lastname,
	}
}
