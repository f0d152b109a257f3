package models

import "strings"

type Category string

const (
	CategoryMoviesShows Category = "Movies & Shows"
	CategorySports      Category = "Sports"
	CategoryAnime       Category = "Anime"
	CategoryBooks       Category = "Books"
)

// Categories lists every directory category in display order.
var Categories = []Category{CategoryMoviesShows, CategorySports, CategoryAnime, CategoryBooks}

var categorySlugs = map[Category]string{
	CategoryMoviesShows: "movies-shows",
	CategorySports:      "sports",
	CategoryAnime:       "anime",
	CategoryBooks:       "books",
}

// Slug returns the URL path segment used for the category page.
func (c Category) Slug() string {
	return categorySlugs[c]
}

func (c Category) Valid() bool {
	_, ok := categorySlugs[c]
	return ok
}

// CategoryFromSlug accepts either a slug ("movies-shows") or a display
// name ("Movies & Shows"), case-insensitively.
func CategoryFromSlug(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if s == c.Slug() || s == strings.ToLower(string(c)) {
			return c, true
		}
	}
	return "", false
}

type AdLevel string

const (
	AdLevelLow    AdLevel = "Low"
	AdLevelMedium AdLevel = "Medium"
	AdLevelHigh   AdLevel = "High"
)

func (a AdLevel) Valid() bool {
	switch a {
	case AdLevelLow, AdLevelMedium, AdLevelHigh:
		return true
	}
	return false
}

type SiteStatus string

const (
	StatusWorking SiteStatus = "Working"
	StatusIssues  SiteStatus = "Issues"
	StatusDown    SiteStatus = "Down"
)

func (s SiteStatus) Valid() bool {
	switch s {
	case StatusWorking, StatusIssues, StatusDown:
		return true
	}
	return false
}

// DirectorySite is one catalog record for a third-party streaming website.
// Records are loaded once at startup and never mutated afterwards.
type DirectorySite struct {
	Name              string     `json:"name" toml:"name"`
	Category          Category   `json:"category" toml:"category"`
	Description       string     `json:"description" toml:"description"`
	Rating            float64    `json:"rating" toml:"rating"`
	AdLevel           AdLevel    `json:"adLevel" toml:"ad_level"`
	Status            SiteStatus `json:"status" toml:"status"`
	Features          []string   `json:"features" toml:"features"`
	LastUpdated       string     `json:"lastUpdated" toml:"last_updated"`
	HasSearch         bool       `json:"hasSearch" toml:"has_search"`
	URL               string     `json:"url" toml:"url"`
	SearchURLTemplate string     `json:"searchUrlTemplate,omitempty" toml:"search_url_template,omitempty"`
}

// SearchFields returns the text the lexical matcher looks at, title first.
func (s DirectorySite) SearchFields() []string {
	fields := make([]string, 0, 3+len(s.Features))
	fields = append(fields, s.Name, s.Description, string(s.Category))
	fields = append(fields, s.Features...)
	return fields
}
