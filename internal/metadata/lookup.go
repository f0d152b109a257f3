// Package metadata resolves free-text queries into content items using the
// TMDB provider, and guesses a synthetic item when the provider has nothing.
package metadata

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/conorfabian/streamlinks/internal/tmdb"
	"github.com/conorfabian/streamlinks/pkg/models"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

// MaxPerKind caps how many movie and how many TV results are kept.
const MaxPerKind = 5

// ErrNotConfigured is returned when no provider credential is set.
var ErrNotConfigured = errors.New("metadata provider not configured")

// ProviderError wraps a transport or decode failure from the provider.
type ProviderError struct {
	Query string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("metadata lookup %q: %v", e.Query, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Service runs provider lookups. A nil searcher means the provider is
// disabled.
type Service struct {
	searcher     tmdb.Searcher
	imageBaseURL string
	logger       *log.Logger
}

func NewService(searcher tmdb.Searcher, imageBaseURL string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		searcher:     searcher,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		logger:       logger,
	}
}

// NewFromConfig builds the TMDB client when a credential is configured and a
// disabled service otherwise.
func NewFromConfig(cfg utils.TMDBConfig, logger *log.Logger) (*Service, error) {
	if !cfg.Enabled() {
		return NewService(nil, cfg.ImageBaseURL, logger), nil
	}
	client, err := tmdb.New(cfg.APIKey, cfg.BaseURL, cfg.Language,
		tmdb.WithTimeout(cfg.Timeout()),
		tmdb.WithRateLimit(cfg.RequestsPerSecond),
	)
	if err != nil {
		return nil, fmt.Errorf("tmdb client: %w", err)
	}
	return NewService(client, cfg.ImageBaseURL, logger), nil
}

// Enabled reports whether lookups reach the provider.
func (s *Service) Enabled() bool { return s != nil && s.searcher != nil }

// Search queries movies and series concurrently. Either failure fails the
// whole search. Results are movies then series, stably sorted by popularity
// descending.
func (s *Service) Search(ctx context.Context, query string) ([]models.ContentItem, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	query = strings.TrimSpace(query)

	var movies, shows *tmdb.Response
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.searcher.SearchMovie(gctx, query)
		if err != nil {
			return fmt.Errorf("movie search: %w", err)
		}
		movies = resp
		return nil
	})
	g.Go(func() error {
		resp, err := s.searcher.SearchTV(gctx, query)
		if err != nil {
			return fmt.Errorf("tv search: %w", err)
		}
		shows = resp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &ProviderError{Query: query, Err: err}
	}

	items := make([]models.ContentItem, 0, 2*MaxPerKind)
	for _, r := range head(movies) {
		items = append(items, s.fromMovie(r))
	}
	for _, r := range head(shows) {
		items = append(items, s.fromShow(r))
	}
	slices.SortStableFunc(items, func(a, b models.ContentItem) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	return items, nil
}

// Lookup is Search with every failure logged and turned into an empty
// sequence. The provider is queried on first iteration; the sequence is
// one-shot.
func (s *Service) Lookup(ctx context.Context, query string) iter.Seq[models.ContentItem] {
	var used atomic.Bool
	return func(yield func(models.ContentItem) bool) {
		if used.Swap(true) {
			return
		}
		items, err := s.Search(ctx, query)
		switch {
		case errors.Is(err, ErrNotConfigured):
			s.logger.Debug("content lookup skipped", "query", query, "reason", err)
			return
		case err != nil:
			s.logger.Warn("content lookup failed", "query", query, "err", err)
			return
		}
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func head(resp *tmdb.Response) []tmdb.Result {
	if resp == nil {
		return nil
	}
	if len(resp.Results) > MaxPerKind {
		return resp.Results[:MaxPerKind]
	}
	return resp.Results
}

func (s *Service) fromMovie(r tmdb.Result) models.ContentItem {
	return models.ContentItem{
		ID:            strconv.FormatInt(r.ID, 10),
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Year:          yearOf(r.ReleaseDate),
		Type:          models.ContentMovie,
		Poster:        s.poster(r.PosterPath),
		Overview:      r.Overview,
		Genres:        tmdb.MovieGenres(r.GenreIDs),
		Rating:        r.VoteAverage,
		Popularity:    r.Popularity,
	}
}

func (s *Service) fromShow(r tmdb.Result) models.ContentItem {
	kind := models.ContentTV
	if IsAnime(r) {
		kind = models.ContentAnime
	}
	return models.ContentItem{
		ID:            strconv.FormatInt(r.ID, 10),
		Title:         r.Name,
		OriginalTitle: r.OriginalName,
		Year:          yearOf(r.FirstAirDate),
		Type:          kind,
		Poster:        s.poster(r.PosterPath),
		Overview:      r.Overview,
		Genres:        tmdb.TVGenres(r.GenreIDs),
		Rating:        r.VoteAverage,
		Popularity:    r.Popularity,
	}
}

func (s *Service) poster(path string) string {
	if path == "" {
		return ""
	}
	return s.imageBaseURL + path
}

// yearOf reads the year from a YYYY-MM-DD date; anything else is 0.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
