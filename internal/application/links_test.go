package application

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"confsite/internal/domain/entity"
)

func TestExtractLinks_DropsBlankPairs(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("link0Name", "GH")
	form.Set("link0Url", "http://g.it")
	form.Set("link1Name", "")
	form.Set("link1Url", "x")

	links := ExtractLinks(form)
	assert.Equal(t, []entity.Link{{Name: "GH", URL: "http://g.it"}}, links)
}

func TestExtractLinks_PreservesIndexOrder(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("link4Name", "last")
	form.Set("link4Url", "https://last.example")
	form.Set("link0Name", "first")
	form.Set("link0Url", "https://first.example")
	form.Set("link2Name", "middle")
	form.Set("link2Url", "https://middle.example")

	links := ExtractLinks(form)
	assert.Equal(t, []entity.Link{
		{Name: "first", URL: "https://first.example"},
		{Name: "middle", URL: "https://middle.example"},
		{Name: "last", URL: "https://last.example"},
	}, links)
}

func TestExtractLinks_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractLinks(url.Values{}))
}

func TestExtractLinks_IgnoresIndexesBeyondFive(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("link5Name", "nope")
	form.Set("link5Url", "https://nope.example")

	assert.Empty(t, ExtractLinks(form))
}
