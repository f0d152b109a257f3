package catalog

import (
	"slices"
	"testing"

	"github.com/conorfabian/streamlinks/pkg/models"
)

func site(name string, cat models.Category, rating float64) models.DirectorySite {
	return models.DirectorySite{
		Name:     name,
		Category: cat,
		Rating:   rating,
		AdLevel:  models.AdLevelMedium,
		Status:   models.StatusWorking,
		URL:      "https://" + name + ".example",
	}
}

func names(sites []models.DirectorySite) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.Name
	}
	return out
}

func mustNew(t *testing.T, sites ...models.DirectorySite) *Catalog {
	t.Helper()
	c, err := New(sites)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestNewRejectsMalformedSources(t *testing.T) {
	good := site("a", models.CategoryAnime, 4)
	tests := map[string][]models.DirectorySite{
		"empty":     nil,
		"duplicate": {good, good},
		"no name":   {site("", models.CategoryAnime, 4)},
		"category":  {site("b", "Cartoons", 4)},
		"rating":    {site("c", models.CategoryAnime, 5.5)},
		"ad level": {func() models.DirectorySite {
			s := site("d", models.CategoryAnime, 4)
			s.AdLevel = "None"
			return s
		}()},
		"status": {func() models.DirectorySite {
			s := site("e", models.CategoryAnime, 4)
			s.Status = "Gone"
			return s
		}()},
	}
	for name, sites := range tests {
		if _, err := New(sites); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestAllIsACopy(t *testing.T) {
	c := mustNew(t, site("a", models.CategoryAnime, 4), site("b", models.CategoryBooks, 3))
	all := c.All()
	all[0].Name = "mutated"
	if got := c.All()[0].Name; got != "a" {
		t.Fatalf("catalog mutated through All(): %q", got)
	}
}

func TestByCategoryKeepsOrder(t *testing.T) {
	c := mustNew(t,
		site("a1", models.CategoryAnime, 3),
		site("b1", models.CategoryBooks, 5),
		site("a2", models.CategoryAnime, 5),
	)
	if got := names(c.ByCategory(models.CategoryAnime)); !slices.Equal(got, []string{"a1", "a2"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if got := c.ByCategory(models.CategorySports); len(got) != 0 {
		t.Fatalf("expected no sports sites, got %v", names(got))
	}
}

func TestSearchPrefixScenario(t *testing.T) {
	other := site("Other Site", models.CategoryAnime, 4)
	other.Description = "mirror for naruto and more"
	c := mustNew(t, other, site("Naruto Stream", models.CategoryAnime, 4))

	got := names(c.Search("narut"))
	if !slices.Equal(got, []string{"Naruto Stream", "Other Site"}) {
		t.Fatalf("unexpected ranking %v", got)
	}
}

func TestSearchMatchesFeaturesAndCategory(t *testing.T) {
	s := site("Plain", models.CategoryBooks, 4)
	s.Features = []string{"Offline Reading"}
	c := mustNew(t, s, site("Else", models.CategoryAnime, 4))

	if got := names(c.Search("offline")); !slices.Equal(got, []string{"Plain"}) {
		t.Fatalf("feature search: %v", got)
	}
	if got := names(c.Search("books")); !slices.Equal(got, []string{"Plain"}) {
		t.Fatalf("category search: %v", got)
	}
	if got := c.Search("a"); len(got) != 0 {
		t.Fatalf("short query should match nothing, got %v", names(got))
	}
}

func TestSearchExactNameRanksFirstInDefaultCatalog(t *testing.T) {
	sites, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	c := mustNew(t, sites...)
	for _, s := range c.All() {
		got := c.Search(s.Name)
		if len(got) == 0 || got[0].Name != s.Name {
			t.Fatalf("Search(%q) ranked %v", s.Name, names(got))
		}
	}
}

func TestPopularTiesKeepSourceOrder(t *testing.T) {
	c := mustNew(t,
		site("a", models.CategoryAnime, 4.5),
		site("b", models.CategoryAnime, 4.9),
		site("c", models.CategoryAnime, 4.5),
		site("d", models.CategoryAnime, 3.0),
	)
	if got := names(c.Popular(3)); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Fatalf("unexpected popular slice %v", got)
	}
	if got := c.Popular(10); len(got) != 4 {
		t.Fatalf("expected all 4 sites, got %d", len(got))
	}
}

func TestSearchable(t *testing.T) {
	a := site("a", models.CategoryAnime, 4)
	a.HasSearch = true
	c := mustNew(t, a, site("b", models.CategoryAnime, 4))
	if got := names(c.Searchable()); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("unexpected searchable %v", got)
	}
}

func TestListFiltersSortsAndPages(t *testing.T) {
	down := site("Zeta", models.CategoryAnime, 4.9)
	down.Status = models.StatusDown
	down.LastUpdated = "today"
	fresh := site("alpha", models.CategoryAnime, 3.0)
	fresh.LastUpdated = "2 days ago"
	c := mustNew(t, down, fresh, site("Beta", models.CategoryAnime, 4.0), site("Book", models.CategoryBooks, 5))

	items, total := c.List(ListQuery{Category: models.CategoryAnime, Sort: "name"})
	if total != 3 || !slices.Equal(names(items), []string{"alpha", "Beta", "Zeta"}) {
		t.Fatalf("name sort: total=%d items=%v", total, names(items))
	}

	items, _ = c.List(ListQuery{Category: models.CategoryAnime, Status: "working"})
	if !slices.Equal(names(items), []string{"Beta", "alpha"}) {
		t.Fatalf("working filter: %v", names(items))
	}

	items, _ = c.List(ListQuery{Sort: "newest"})
	if items[0].Name != "Zeta" || items[1].Name != "alpha" {
		t.Fatalf("newest sort: %v", names(items))
	}

	items, total = c.List(ListQuery{Limit: 2, Offset: 1})
	if total != 4 || !slices.Equal(names(items), []string{"Zeta", "Beta"}) {
		t.Fatalf("paging: total=%d items=%v", total, names(items))
	}

	items, total = c.List(ListQuery{Offset: 10})
	if total != 4 || len(items) != 0 {
		t.Fatalf("offset past end: total=%d items=%v", total, names(items))
	}
}

func TestCategories(t *testing.T) {
	down := site("x", models.CategoryAnime, 4)
	down.Status = models.StatusDown
	c := mustNew(t, down, site("y", models.CategoryAnime, 4), site("z", models.CategoryBooks, 4))

	rows := c.Categories()
	if len(rows) != len(models.Categories) {
		t.Fatalf("expected %d rows, got %d", len(models.Categories), len(rows))
	}
	for _, r := range rows {
		switch r.Category {
		case models.CategoryAnime:
			if r.Count != 2 || r.Working != 1 || r.Slug != "anime" {
				t.Fatalf("anime row %+v", r)
			}
		case models.CategorySports:
			if r.Count != 0 {
				t.Fatalf("sports row %+v", r)
			}
		}
	}
}
