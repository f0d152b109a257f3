package metadata

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/conorfabian/streamlinks/internal/tmdb"
	"github.com/conorfabian/streamlinks/pkg/models"
)

var (
	animeCountries = []string{"JP", "KR"}
	animeKeywords  = []string{"anime", "manga", "japanese", "korean"}
)

// IsAnime classifies a TV result: it must carry the Animation genre and
// either originate from Japan/Korea or mention an anime keyword.
func IsAnime(r tmdb.Result) bool {
	if !slices.Contains(r.GenreIDs, tmdb.GenreAnimation) {
		return false
	}
	for _, c := range r.OriginCountry {
		if slices.Contains(animeCountries, c) {
			return true
		}
	}
	text := strings.ToLower(r.Name + "\n" + r.OriginalName + "\n" + r.Overview)
	for _, kw := range animeKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var (
	animeHints  = []string{"anime", "manga", "naruto", "dragon ball", "one piece", "attack on titan"}
	seriesHints = []string{"series", "show", "season", "episode"}
)

// GuessType picks a content type from keywords in a raw query.
func GuessType(query string) models.ContentType {
	q := strings.ToLower(query)
	for _, h := range animeHints {
		if strings.Contains(q, h) {
			return models.ContentAnime
		}
	}
	for _, h := range seriesHints {
		if strings.Contains(q, h) {
			return models.ContentTV
		}
	}
	return models.ContentMovie
}

// Fallback builds the synthetic item used when the provider returns nothing.
func Fallback(query string, now time.Time) models.ContentItem {
	return models.ContentItem{
		ID:       fmt.Sprintf("fallback-%d", now.UnixMilli()),
		Title:    query,
		Year:     now.Year(),
		Type:     GuessType(query),
		Overview: `Search for "` + query + `" across streaming sites`,
	}
}
