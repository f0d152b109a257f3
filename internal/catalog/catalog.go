package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/conorfabian/streamlinks/internal/lexical"
	"github.com/conorfabian/streamlinks/internal/scoring"
	"github.com/conorfabian/streamlinks/pkg/models"
)

// Catalog is the read-only set of directory sites. It is never written after
// New returns, so any number of goroutines may read it.
type Catalog struct {
	sites  []models.DirectorySite
	byName map[string]int
	index  *lexical.PrefixIndex
}

// New validates sites and builds the catalog. Order is preserved.
func New(sites []models.DirectorySite) (*Catalog, error) {
	if len(sites) == 0 {
		return nil, errors.New("catalog is empty")
	}
	c := &Catalog{
		sites:  make([]models.DirectorySite, len(sites)),
		byName: make(map[string]int, len(sites)),
	}
	titles := make([]string, len(sites))
	for i, s := range sites {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("site %d (%q): %w", i, s.Name, err)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("site %d: duplicate name %q", i, s.Name)
		}
		s.Features = slices.Clone(s.Features)
		c.sites[i] = s
		c.byName[s.Name] = i
		titles[i] = s.Name
	}
	c.index = lexical.NewPrefixIndex(titles)
	return c, nil
}

func validate(s models.DirectorySite) error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return errors.New("name required")
	case !s.Category.Valid():
		return fmt.Errorf("unknown category %q", s.Category)
	case !s.AdLevel.Valid():
		return fmt.Errorf("unknown ad level %q", s.AdLevel)
	case !s.Status.Valid():
		return fmt.Errorf("unknown status %q", s.Status)
	case s.Rating < 0 || s.Rating > 5:
		return fmt.Errorf("rating %.1f out of range", s.Rating)
	case strings.TrimSpace(s.URL) == "":
		return errors.New("url required")
	}
	return nil
}

func (c *Catalog) Len() int { return len(c.sites) }

// All returns every site in source order.
func (c *Catalog) All() []models.DirectorySite {
	return slices.Clone(c.sites)
}

func (c *Catalog) Get(name string) (models.DirectorySite, bool) {
	i, ok := c.byName[name]
	if !ok {
		return models.DirectorySite{}, false
	}
	return c.sites[i], true
}

func (c *Catalog) ByCategory(category models.Category) []models.DirectorySite {
	return c.filter(func(s models.DirectorySite) bool { return s.Category == category })
}

// Searchable returns the sites that support direct title search.
func (c *Catalog) Searchable() []models.DirectorySite {
	return c.filter(func(s models.DirectorySite) bool { return s.HasSearch })
}

func (c *Catalog) filter(keep func(models.DirectorySite) bool) []models.DirectorySite {
	var out []models.DirectorySite
	for _, s := range c.sites {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Search ranks sites against a free-text query. Name-prefix matches come
// first, then any other field match, each group in source order.
func (c *Catalog) Search(query string) []models.DirectorySite {
	return lexical.RankIndexed(c.index, query, c.sites, models.DirectorySite.SearchFields)
}

// Popular returns the n highest-rated sites; equal ratings keep source order.
func (c *Catalog) Popular(n int) []models.DirectorySite {
	out := slices.Clone(c.sites)
	slices.SortStableFunc(out, byRatingDesc)
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func byRatingDesc(a, b models.DirectorySite) int {
	switch {
	case a.Rating > b.Rating:
		return -1
	case a.Rating < b.Rating:
		return 1
	}
	return 0
}

// CategoryCount is one row of the category overview.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Slug     string          `json:"slug"`
	Count    int             `json:"count"`
	Working  int             `json:"working"`
}

func (c *Catalog) Categories() []CategoryCount {
	out := make([]CategoryCount, 0, len(models.Categories))
	for _, cat := range models.Categories {
		row := CategoryCount{Category: cat, Slug: cat.Slug()}
		for _, s := range c.sites {
			if s.Category != cat {
				continue
			}
			row.Count++
			if s.Status == models.StatusWorking {
				row.Working++
			}
		}
		out = append(out, row)
	}
	return out
}

// ListQuery drives the category browse view.
type ListQuery struct {
	Category models.Category // empty = every category
	Status   string          // all | working | issues | down
	Sort     string          // rating | name | newest
	Limit    int
	Offset   int
}

// List filters, sorts and pages the catalog. It returns the page and the
// number of sites that matched before paging.
func (c *Catalog) List(q ListQuery) ([]models.DirectorySite, int) {
	status := strings.ToLower(strings.TrimSpace(q.Status))
	out := c.filter(func(s models.DirectorySite) bool {
		if q.Category != "" && s.Category != q.Category {
			return false
		}
		switch status {
		case "", "all":
			return true
		default:
			return strings.EqualFold(string(s.Status), status)
		}
	})

	switch strings.ToLower(strings.TrimSpace(q.Sort)) {
	case "name":
		slices.SortStableFunc(out, func(a, b models.DirectorySite) int {
			return strings.Compare(lexical.Fold(a.Name), lexical.Fold(b.Name))
		})
	case "newest":
		slices.SortStableFunc(out, func(a, b models.DirectorySite) int {
			return scoring.DaysSinceUpdate(a.LastUpdated) - scoring.DaysSinceUpdate(b.LastUpdated)
		})
	default:
		slices.SortStableFunc(out, byRatingDesc)
	}

	total := len(out)
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	limit := q.Limit
	if limit <= 0 || offset+limit > total {
		limit = total - offset
	}
	return out[offset : offset+limit], total
}
