package models

import "strconv"

type SuggestionKind string

const (
	KindSite    SuggestionKind = "site"
	KindContent SuggestionKind = "content"
)

// Suggestion is a single autocomplete entry. Kind decides which of the
// optional fields are populated: Category, Rating and URL for sites;
// Year and ContentType for content.
type Suggestion struct {
	Kind        SuggestionKind `json:"kind"`
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Icon        string         `json:"icon"`
	Category    Category       `json:"category,omitempty"`
	Rating      float64        `json:"rating,omitempty"`
	URL         string         `json:"url,omitempty"`
	Year        int            `json:"year,omitempty"`
	ContentType ContentType    `json:"contentType,omitempty"`
}

func SiteSuggestion(s DirectorySite) Suggestion {
	return Suggestion{
		Kind:     KindSite,
		ID:       s.Name,
		Title:    s.Name,
		Subtitle: s.Description,
		Icon:     "tv",
		Category: s.Category,
		Rating:   s.Rating,
		URL:      s.URL,
	}
}

func ContentSuggestion(c ContentItem) Suggestion {
	t := c.Type
	if t == "" {
		t = ContentMovie
	}
	subtitle := t.Label()
	if c.Year > 0 {
		subtitle += " • " + strconv.Itoa(c.Year)
	}
	icon := "tv"
	if t == ContentMovie {
		icon = "film"
	}
	id, title := c.Title, c.Title
	if id == "" {
		id = "unknown"
	}
	if title == "" {
		title = "Untitled"
	}
	return Suggestion{
		Kind:        KindContent,
		ID:          id,
		Title:       title,
		Subtitle:    subtitle,
		Icon:        icon,
		Year:        c.Year,
		ContentType: t,
	}
}
