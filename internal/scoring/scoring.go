// Package scoring decides which directory sites are likely to carry a title
// and how confident that guess is. Everything here is a pure function of
// declared site metadata.
package scoring

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/conorfabian/streamlinks/pkg/models"
)

// Thresholds for Tier.
const (
	HighScore   = 6
	MediumScore = 3
)

// defaultDaysSinceUpdate applies when LastUpdated is not recognised.
const defaultDaysSinceUpdate = 30

var libraryFeatures = map[string]bool{
	"Huge Library":    true,
	"Large Library":   true,
	"Vast Library":    true,
	"Wide Selection":  true,
	"Vast Collection": true,
}

var (
	daysAgoRe   = regexp.MustCompile(`(?i)(\d+)\s*days?\s*ago`)
	weeksAgoRe  = regexp.MustCompile(`(?i)(\d+)\s*weeks?\s*ago`)
	yesterdayRe = regexp.MustCompile(`(?i)yesterday`)
	todayRe     = regexp.MustCompile(`(?i)today`)
)

// categoryFor maps a content type to the only site category that can carry it.
func categoryFor(t models.ContentType) (models.Category, bool) {
	switch t {
	case models.ContentMovie, models.ContentTV:
		return models.CategoryMoviesShows, true
	case models.ContentAnime:
		return models.CategoryAnime, true
	case models.ContentManga:
		return models.CategoryBooks, true
	default:
		return "", false
	}
}

// CandidateSites returns, in input order, the sites with search support whose
// category is compatible with the content type.
func CandidateSites(sites []models.DirectorySite, content models.ContentItem) []models.DirectorySite {
	want, ok := categoryFor(content.Type)
	if !ok {
		return nil
	}
	var out []models.DirectorySite
	for _, s := range sites {
		if s.HasSearch && s.Category == want {
			out = append(out, s)
		}
	}
	return out
}

// Score sums the rating, ad level, recency and library bonuses. content is
// accepted so the signature can grow title-aware bonuses; it does not
// currently affect the result.
func Score(site models.DirectorySite, _ models.ContentItem) int {
	score := 0

	switch {
	case site.Rating >= 4.8:
		score += 3
	case site.Rating >= 4.5:
		score += 2
	case site.Rating >= 4.0:
		score += 1
	}

	switch site.AdLevel {
	case models.AdLevelLow:
		score += 2
	case models.AdLevelMedium:
		score += 1
	}

	switch days := DaysSinceUpdate(site.LastUpdated); {
	case days <= 3:
		score += 2
	case days <= 7:
		score += 1
	}

	for _, f := range site.Features {
		if libraryFeatures[f] {
			score += 2
			break
		}
	}
	return score
}

func Tier(score int) models.Confidence {
	switch {
	case score >= HighScore:
		return models.ConfidenceHigh
	case score >= MediumScore:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// DaysSinceUpdate converts a relative date such as "3 days ago" into a day
// count. Patterns are tried in order: days, weeks, yesterday, today.
func DaysSinceUpdate(lastUpdated string) int {
	if m := daysAgoRe.FindStringSubmatch(lastUpdated); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := weeksAgoRe.FindStringSubmatch(lastUpdated); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n * 7
		}
	}
	if yesterdayRe.MatchString(lastUpdated) {
		return 1
	}
	if todayRe.MatchString(lastUpdated) {
		return 0
	}
	return defaultDaysSinceUpdate
}

// Match scores one site against content.
func Match(site models.DirectorySite, content models.ContentItem) models.SiteMatch {
	score := Score(site, content)
	return models.SiteMatch{
		Site:            site,
		DirectSearchURL: BuildSearchURL(site, content.Title),
		Confidence:      Tier(score),
		Score:           score,
	}
}

// MatchAll scores every given site without filtering and orders the result
// by confidence tier, then rating, both descending. Ties keep input order.
func MatchAll(sites []models.DirectorySite, content models.ContentItem) []models.SiteMatch {
	out := make([]models.SiteMatch, 0, len(sites))
	for _, s := range sites {
		out = append(out, Match(s, content))
	}
	slices.SortStableFunc(out, func(a, b models.SiteMatch) int {
		if d := b.Confidence.Rank() - a.Confidence.Rank(); d != 0 {
			return d
		}
		switch {
		case a.Site.Rating > b.Site.Rating:
			return -1
		case a.Site.Rating < b.Site.Rating:
			return 1
		}
		return 0
	})
	return out
}

// MatchSites restricts sites to the candidates for content and ranks them.
func MatchSites(sites []models.DirectorySite, content models.ContentItem) []models.SiteMatch {
	return MatchAll(CandidateSites(sites, content), content)
}
