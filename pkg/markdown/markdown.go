// Package markdown renders profile descriptions to HTML and sanitizes
// submitted markdown before storage.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MaxSize caps a single description, in bytes.
const MaxSize = 5000

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	)
	policy = bluemonday.UGCPolicy()
)

// ToHTML converts markdown to sanitized HTML. The rendered output goes
// through the same policy as Sanitize so stored and displayed content agree.
func ToHTML(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return policy.Sanitize(buf.String())
}

// Sanitize strips disallowed constructs (raw script/style, event handlers)
// from submitted markdown before it is stored.
func Sanitize(src string) string {
	return policy.Sanitize(src)
}

// IsValid reports whether a submitted description is acceptable: non-blank,
// within the size cap, and unchanged by sanitization apart from whitespace.
func IsValid(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || len(src) > MaxSize {
		return false
	}
	return strings.TrimSpace(Sanitize(trimmed)) != ""
}
