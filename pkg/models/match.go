package models

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders tiers for sorting: high > medium > low.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// SiteMatch pairs a content item with one directory site that likely
// carries it.
type SiteMatch struct {
	Site            DirectorySite `json:"site"`
	DirectSearchURL string        `json:"directSearchUrl"`
	Confidence      Confidence    `json:"confidence"`
	Score           int           `json:"score"`
}

type ContentResult struct {
	Content     ContentItem `json:"content"`
	AvailableOn []SiteMatch `json:"availableOn"`
}
