package metadata

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/internal/tmdb"
	"github.com/conorfabian/streamlinks/pkg/models"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

type fakeSearcher struct {
	movies, shows []tmdb.Result
	movieErr      error
	calls         atomic.Int32
}

func (f *fakeSearcher) SearchMovie(ctx context.Context, query string) (*tmdb.Response, error) {
	f.calls.Add(1)
	if f.movieErr != nil {
		return nil, f.movieErr
	}
	return &tmdb.Response{Page: 1, Results: f.movies}, nil
}

func (f *fakeSearcher) SearchTV(ctx context.Context, query string) (*tmdb.Response, error) {
	f.calls.Add(1)
	return &tmdb.Response{Page: 1, Results: f.shows}, nil
}

func collect(s *Service, q string) []models.ContentItem {
	var out []models.ContentItem
	for item := range s.Lookup(context.Background(), q) {
		out = append(out, item)
	}
	return out
}

func TestSearchWithoutCredential(t *testing.T) {
	svc, err := NewFromConfig(utils.TMDBConfig{}, logging.Discard())
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("service should be disabled without an api key")
	}
	if _, err := svc.Search(context.Background(), "dune"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if got := collect(svc, "dune"); len(got) != 0 {
		t.Fatalf("expected empty lookup, got %v", got)
	}
}

func TestSearchMergesAndSortsByPopularity(t *testing.T) {
	f := &fakeSearcher{
		movies: []tmdb.Result{
			{ID: 1, Title: "Dune", ReleaseDate: "2021-09-15", Popularity: 50, GenreIDs: []int{878}, PosterPath: "/dune.jpg"},
			{ID: 2, Title: "Dune Part Two", ReleaseDate: "2024-02-27", Popularity: 90},
		},
		shows: []tmdb.Result{
			{ID: 3, Name: "Dune: Prophecy", FirstAirDate: "2024-11-17", Popularity: 50},
		},
	}
	svc := NewService(f, "https://img.example/w500/", logging.Discard())

	items, err := svc.Search(context.Background(), "dune")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if !slices.Equal(ids, []string{"2", "1", "3"}) {
		t.Fatalf("unexpected order %v", ids)
	}
	dune := items[1]
	if dune.Year != 2021 || dune.Type != models.ContentMovie || dune.Poster != "https://img.example/w500/dune.jpg" {
		t.Fatalf("unexpected movie item %+v", dune)
	}
	if !slices.Equal(dune.Genres, []string{"Science Fiction"}) {
		t.Fatalf("unexpected genres %v", dune.Genres)
	}
	if items[2].Type != models.ContentTV || items[2].Title != "Dune: Prophecy" {
		t.Fatalf("unexpected show item %+v", items[2])
	}
}

func TestSearchCapsEachKind(t *testing.T) {
	f := &fakeSearcher{}
	for i := range 8 {
		f.movies = append(f.movies, tmdb.Result{ID: int64(i), Title: "m"})
		f.shows = append(f.shows, tmdb.Result{ID: int64(100 + i), Name: "s"})
	}
	items, err := NewService(f, "", logging.Discard()).Search(context.Background(), "xx")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(items) != 2*MaxPerKind {
		t.Fatalf("expected %d items, got %d", 2*MaxPerKind, len(items))
	}
}

func TestProviderFailureEmptiesLookup(t *testing.T) {
	f := &fakeSearcher{
		movieErr: errors.New("boom"),
		shows:    []tmdb.Result{{ID: 9, Name: "Still Here"}},
	}
	svc := NewService(f, "", logging.Discard())

	_, err := svc.Search(context.Background(), "anything")
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Query != "anything" {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if got := collect(svc, "anything"); len(got) != 0 {
		t.Fatalf("expected empty lookup, got %v", got)
	}
}

func TestLookupIsOneShot(t *testing.T) {
	f := &fakeSearcher{movies: []tmdb.Result{{ID: 1, Title: "Once"}}}
	seq := NewService(f, "", logging.Discard()).Lookup(context.Background(), "once")

	var first, second int
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 1 || second != 0 {
		t.Fatalf("first=%d second=%d", first, second)
	}
	if got := f.calls.Load(); got != 2 {
		t.Fatalf("expected one movie and one tv call, got %d", got)
	}
}

func TestIsAnime(t *testing.T) {
	tests := []struct {
		name string
		r    tmdb.Result
		want bool
	}{
		{"animation from japan", tmdb.Result{GenreIDs: []int{16}, OriginCountry: []string{"JP"}}, true},
		{"animation with keyword", tmdb.Result{GenreIDs: []int{16}, Overview: "Based on the Japanese manga."}, true},
		{"animation from us", tmdb.Result{GenreIDs: []int{16}, OriginCountry: []string{"US"}, Name: "Bluey"}, false},
		{"japanese drama", tmdb.Result{GenreIDs: []int{18}, OriginCountry: []string{"JP"}}, false},
		{"korean keyword in original name", tmdb.Result{GenreIDs: []int{10759, 16}, OriginalName: "Korean Heroes"}, true},
	}
	for _, tt := range tests {
		if got := IsAnime(tt.r); got != tt.want {
			t.Errorf("%s: IsAnime = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestShowClassifiedAsAnime(t *testing.T) {
	f := &fakeSearcher{shows: []tmdb.Result{{ID: 46260, Name: "Naruto", GenreIDs: []int{16, 10759}, OriginCountry: []string{"JP"}}}}
	items, err := NewService(f, "", logging.Discard()).Search(context.Background(), "naruto")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(items) != 1 || items[0].Type != models.ContentAnime {
		t.Fatalf("unexpected items %+v", items)
	}
	if !slices.Equal(items[0].Genres, []string{"Animation", "Action & Adventure"}) {
		t.Fatalf("unexpected genres %v", items[0].Genres)
	}
}

func TestGuessType(t *testing.T) {
	tests := map[string]models.ContentType{
		"Naruto Shippuden":         models.ContentAnime,
		"attack on titan season 2": models.ContentAnime,
		"breaking bad season 1":    models.ContentTV,
		"The Office show":          models.ContentTV,
		"Inception":                models.ContentMovie,
	}
	for q, want := range tests {
		if got := GuessType(q); got != want {
			t.Errorf("GuessType(%q) = %s, want %s", q, got, want)
		}
	}
}

func TestFallback(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := Fallback(`my "best" show `, now)
	if item.ID != "fallback-1772366400000" {
		t.Fatalf("unexpected id %q", item.ID)
	}
	if item.Title != `my "best" show ` || item.Type != models.ContentTV || item.Year != 2026 {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Overview != `Search for "my "best" show " across streaming sites` {
		t.Fatalf("unexpected overview %q", item.Overview)
	}
}
