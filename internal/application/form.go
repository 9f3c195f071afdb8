package application

import (
	"fmt"
	"net/url"
	"strings"

	"confsite/internal/domain/entity"
	"confsite/pkg/cryptox"
	"confsite/pkg/markdown"
	"confsite/pkg/validation"
)

// Field length limits for the profile form.
const (
	maxNameLength    = 30
	maxCompanyLength = 60
)

// Error message keys surfaced to the templates.
const (
	errRequired        = "required"
	errTooLong         = "too-long"
	errInvalidEmail    = "invalid-email"
	errInvalidURL      = "invalid-url"
	errInvalidMarkdown = "invalid-markdown"
)

// ValidationErrors maps a field key to a message key. An empty map means the
// form was accepted.
type ValidationErrors map[string]string

// ProfileForm carries the raw editable fields of the profile edit form.
type ProfileForm struct {
	Firstname     string
	Lastname      string
	Email         string
	Company       string
	PhotoURL      string
	DescriptionFr string
	DescriptionEn string
	Links         []entity.Link
}

// ParseProfileForm scrapes the submitted form fields, including the five
// link slots.
func ParseProfileForm(form url.Values) ProfileForm {
	return ProfileForm{
		Firstname:     strings.TrimSpace(form.Get("firstname")),
		Lastname:      strings.TrimSpace(form.Get("lastname")),
		Email:         strings.TrimSpace(form.Get("email")),
		Company:       strings.TrimSpace(form.Get("company")),
		PhotoURL:      strings.TrimSpace(form.Get("photoUrl")),
		DescriptionFr: form.Get("description-fr"),
		DescriptionEn: form.Get("description-en"),
		Links:         ExtractLinks(form),
	}
}

// ApplyProfileEdits builds a candidate user from the loaded entity and the
// submitted form and validates it. Construction and validation stay together
// so a re-rendered form can prefill exactly what will be persisted.
//
// Login, role, legacy id and login token fields are always carried forward
// from the existing user; the form cannot touch them. All checks run even
// after the first failure so the user sees every problem at once. The
// candidate must only be persisted when the returned error map is empty.
func ApplyProfileEdits(existing *entity.User, form ProfileForm, enc *cryptox.Encryptor) (*entity.User, ValidationErrors, error) {
	errs := ValidationErrors{}

	required := map[string]string{
		"firstname":      form.Firstname,
		"lastname":       form.Lastname,
		"email":          form.Email,
		"description-fr": form.DescriptionFr,
		"description-en": form.DescriptionEn,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = errRequired
		}
	}

	// Sanitized regardless of the presence checks above; whatever ends up
	// stored or re-rendered has been through the policy.
	descFr := markdown.Sanitize(form.DescriptionFr)
	descEn := markdown.Sanitize(form.DescriptionEn)

	encryptedEmail := existing.Email
	if form.Email != "" {
		var err error
		encryptedEmail, err = enc.Encrypt(form.Email)
		if err != nil {
			return nil, nil, err
		}
	}

	candidate := &entity.User{
		Login:     existing.Login,
		Firstname: form.Firstname,
		Lastname:  form.Lastname,
		Email:     encryptedEmail,
		Company:   form.Company,
		Description: map[entity.Language]string{
			entity.French:  descFr,
			entity.English: descEn,
		},
		EmailHash:       cryptox.EmailHash(form.Email),
		PhotoURL:        form.PhotoURL,
		Role:            existing.Role,
		Links:           form.Links,
		LegacyID:        existing.LegacyID,
		TokenExpiration: existing.TokenExpiration,
		Token:           existing.Token,
		CreatedAt:       existing.CreatedAt,
	}

	if !validation.IsValidMaxLength(candidate.Firstname, maxNameLength) {
		errs["firstname"] = errTooLong
	}
	if !validation.IsValidMaxLength(candidate.Lastname, maxNameLength) {
		errs["lastname"] = errTooLong
	}
	if !validation.IsValidMaxLength(candidate.Company, maxCompanyLength) {
		errs["company"] = errTooLong
	}
	if form.Email != "" && !validation.IsValidEmail(form.Email) {
		errs["email"] = errInvalidEmail
	}
	if _, ok := errs["description-fr"]; !ok && !markdown.IsValid(descFr) {
		errs["description-fr"] = errInvalidMarkdown
	}
	if _, ok := errs["description-en"]; !ok && !markdown.IsValid(descEn) {
		errs["description-en"] = errInvalidMarkdown
	}
	if !validation.IsValidURL(candidate.PhotoURL) {
		errs["photoUrl"] = errInvalidURL
	}
	for i, link := range candidate.Links {
		// Error keys carry the 1-based slot position.
		if !validation.IsValidMaxLength(link.Name, maxNameLength) {
			errs[fmt.Sprintf("link-name-%d", i+1)] = errTooLong
		}
		if !validation.IsValidURL(link.URL) || link.URL == "" {
			errs[fmt.Sprintf("link-url-%d", i+1)] = errInvalidURL
		}
	}

	return candidate, errs, nil
}
