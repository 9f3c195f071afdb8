package application

import (
	"fmt"
	"net/url"
	"strings"

	"confsite/internal/domain/entity"
)

// ExtractLinks pulls up to five (name, url) pairs out of the submitted form.
// Fields are keyed link{i}Name / link{i}Url for i in [0,4]. A pair is emitted
// only when both halves are non-blank; skipped indexes leave no placeholder,
// so input order is preserved but positions may compact.
//
// No validation happens here; the pairs are checked after the candidate user
// is built.
func ExtractLinks(form url.Values) []entity.Link {
	var links []entity.Link
	for i := 0; i < entity.MaxLinks; i++ {
		name := strings.TrimSpace(form.Get(fmt.Sprintf("link%dName", i)))
		u := strings.TrimSpace(form.Get(fmt.Sprintf("link%dUrl", i)))
		if name == "" || u == "" {
			continue
		}
		links = append(links, entity.Link{Name: name, URL: u})
	}
	return links
}
