package models

type ContentType string

const (
	ContentMovie ContentType = "movie"
	ContentTV    ContentType = "tv"
	ContentAnime ContentType = "anime"
	ContentManga ContentType = "manga"
)

// Label is the capitalised form shown in suggestion subtitles.
func (t ContentType) Label() string {
	switch t {
	case ContentMovie:
		return "Movie"
	case ContentTV:
		return "Tv"
	case ContentAnime:
		return "Anime"
	case ContentManga:
		return "Manga"
	default:
		return string(t)
	}
}

// ContentItem is a movie/show/anime/manga title resolved from the metadata
// provider or guessed from a raw query. Built per request, never persisted.
type ContentItem struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"originalTitle,omitempty"`
	Year          int         `json:"year,omitempty"`
	Type          ContentType `json:"type"`
	Poster        string      `json:"poster,omitempty"`
	Overview      string      `json:"overview,omitempty"`
	Genres        []string    `json:"genres,omitempty"`
	Rating        float64     `json:"rating,omitempty"`
	Popularity    float64     `json:"popularity,omitempty"`
}
