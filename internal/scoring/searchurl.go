package scoring

import (
	"net/url"
	"strings"

	"github.com/conorfabian/streamlinks/pkg/models"
)

// QueryPlaceholder marks where the escaped title goes in a search template.
const QueryPlaceholder = "{query}"

// BuildSearchURL returns a direct search link for title on site, or the
// site's home URL when it has no usable template.
func BuildSearchURL(site models.DirectorySite, title string) string {
	tmpl := site.SearchURLTemplate
	if tmpl == "" || !strings.Contains(tmpl, QueryPlaceholder) {
		return site.URL
	}
	return strings.Replace(tmpl, QueryPlaceholder, url.QueryEscape(title), 1)
}

// TitleFromSearchURL inverts BuildSearchURL. ok is false when link was not
// produced from the site's template.
func TitleFromSearchURL(site models.DirectorySite, link string) (string, bool) {
	prefix, suffix, found := strings.Cut(site.SearchURLTemplate, QueryPlaceholder)
	if !found {
		return "", false
	}
	if !strings.HasPrefix(link, prefix) || !strings.HasSuffix(link, suffix) || len(link) < len(prefix)+len(suffix) {
		return "", false
	}
	escaped := link[len(prefix) : len(link)-len(suffix)]
	title, err := url.QueryUnescape(escaped)
	if err != nil {
		return "", false
	}
	return title, true
}
