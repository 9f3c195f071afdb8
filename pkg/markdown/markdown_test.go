package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML_RendersEmphasis(t *testing.T) {
	t.Parallel()

	html := ToHTML("hello **world**")
	assert.Contains(t, html, "<strong>world</strong>")
}

func TestToHTML_StripsScript(t *testing.T) {
	t.Parallel()

	html := ToHTML("hi\n\n<script>alert(1)</script>")
	assert.NotContains(t, html, "<script>")
}

func TestSanitize_RemovesEventHandlers(t *testing.T) {
	t.Parallel()

	out := Sanitize(`<a href="https://x.io" onclick="evil()">x</a>`)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "https://x.io")
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValid("a speaker bio"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("   \n\t"))
	assert.False(t, IsValid(strings.Repeat("x", MaxSize+1)))
	// Nothing but stripped markup is not a usable description.
	assert.False(t, IsValid("<script>alert(1)</script>"))
}
