package entity

import "time"

// User is the aggregate root for the conference attendee/speaker domain.
// Email is stored encrypted at rest; EmailHash is a content hash of the
// plaintext email used as a fallback avatar key when PhotoURL is empty.
//
// Login is the stable unique identifier and is immutable after creation.
type User struct {
	Login           string
	Firstname       string
	Lastname        string
	Email           string // AES-GCM ciphertext, base64
	Company         string
	Description     map[Language]string // markdown, one entry per language
	EmailHash       string
	PhotoURL        string
	Role            Role
	Links           []Link
	LegacyID        string
	TokenExpiration time.Time
	Token           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MaxLinks is the number of external link slots a profile carries.
const MaxLinks = 5

// Link is an external reference shown on a profile. Links have no identity
// of their own; position in the slice determines the form field suffix and
// the display slot.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
