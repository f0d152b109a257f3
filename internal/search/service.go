// Package search merges catalog matches and content lookups into the ranked
// suggestion lists served to autocomplete callers.
package search

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/conorfabian/streamlinks/internal/lexical"
	"github.com/conorfabian/streamlinks/internal/metadata"
	"github.com/conorfabian/streamlinks/internal/scoring"
	"github.com/conorfabian/streamlinks/pkg/models"
)

// DefaultLimit is used when a request carries no positive limit.
const DefaultLimit = 8

type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeSites   Scope = "sites"
	ScopeContent Scope = "content"
)

var ErrUnknownScope = errors.New("unknown search scope")

// ParseScope accepts all, sites or content. Empty means all.
func ParseScope(raw string) (Scope, error) {
	switch s := Scope(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeSites, ScopeContent:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, raw)
	}
}

func (s Scope) sites() bool   { return s == ScopeAll || s == ScopeSites || s == "" }
func (s Scope) content() bool { return s == ScopeAll || s == ScopeContent || s == "" }

// Directory is the catalog view the aggregator needs.
type Directory interface {
	Search(query string) []models.DirectorySite
	Searchable() []models.DirectorySite
}

// ContentSource yields content items for a query. Failures are expected to
// surface as an empty sequence.
type ContentSource interface {
	Lookup(ctx context.Context, query string) iter.Seq[models.ContentItem]
}

type Request struct {
	Query string
	Scope Scope
	Limit int
}

// Response is the suggestion payload. A non-empty Error with suggestions is
// a partial result; Failed reports that no branch produced anything.
type Response struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	Query       string              `json:"query,omitempty"`
	Error       string              `json:"error,omitempty"`

	failed bool
}

func (r Response) Failed() bool { return r.failed }

type Service struct {
	sites   Directory
	content ContentSource
	logger  *log.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for fallback items.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(sites Directory, content ContentSource, opts ...Option) *Service {
	s := &Service{
		sites:   sites,
		content: content,
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest answers one autocomplete request. Queries shorter than two
// characters return an empty list without touching either source.
func (s *Service) Suggest(ctx context.Context, req Request) Response {
	q := req.Query
	if utf8.RuneCountInString(q) < lexical.MinQueryLen {
		return Response{Suggestions: []models.Suggestion{}}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		out      []models.Suggestion
		attempts int
		failures int
	)
	if req.Scope.sites() {
		attempts++
		got, err := guard("sites", func() ([]models.Suggestion, error) {
			return s.siteSuggestions(q, limit), nil
		})
		if err != nil {
			failures++
			s.logger.Error("site suggestions failed", "query", q, "err", err)
		}
		out = append(out, got...)
	}
	var contentErr error
	if req.Scope.content() {
		attempts++
		got, err := guard("content", func() ([]models.Suggestion, error) {
			return s.contentSuggestions(ctx, q, limit)
		})
		if err != nil {
			failures++
			contentErr = err
			s.logger.Warn("content suggestions failed", "query", q, "err", err)
		}
		out = append(out, got...)
	}

	if failures > 0 && failures == attempts {
		return Response{
			Suggestions: []models.Suggestion{},
			Query:       q,
			Error:       "Failed to fetch suggestions",
			failed:      true,
		}
	}

	lexical.PrefixFirst(out, lexical.Fold(q), func(sg models.Suggestion) string { return sg.Title })
	if len(out) > limit {
		out = out[:limit]
	}
	resp := Response{Suggestions: out, Query: q}
	if resp.Suggestions == nil {
		resp.Suggestions = []models.Suggestion{}
	}
	if failures > 0 {
		resp.Error = "Site suggestions unavailable"
		if contentErr != nil {
			resp.Error = "Content suggestions unavailable"
		}
	}
	return resp
}

func (s *Service) siteSuggestions(q string, limit int) []models.Suggestion {
	sites := s.sites.Search(q)
	if len(sites) > limit {
		sites = sites[:limit]
	}
	out := make([]models.Suggestion, 0, len(sites))
	for _, site := range sites {
		out = append(out, models.SiteSuggestion(site))
	}
	return out
}

func (s *Service) contentSuggestions(ctx context.Context, q string, limit int) ([]models.Suggestion, error) {
	results, err := s.SearchContent(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]models.Suggestion, 0, len(results))
	for _, r := range results {
		out = append(out, models.ContentSuggestion(r.Content))
	}
	return out, nil
}

// SearchContent resolves a query into content items, each paired with the
// catalog sites likely to carry it. Items with no candidate site are
// dropped. When nothing is left the synthetic fallback result is returned.
func (s *Service) SearchContent(ctx context.Context, query string) ([]models.ContentResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	q := query
	searchable := s.sites.Searchable()

	var results []models.ContentResult
	seen := make(map[string]struct{})
	for item := range s.content.Lookup(ctx, q) {
		key := string(item.Type) + "/" + item.ID
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		matches := scoring.MatchSites(searchable, item)
		if len(matches) == 0 {
			continue
		}
		results = append(results, models.ContentResult{Content: item, AvailableOn: matches})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		results = append(results, s.FallbackContent(q))
	}
	return results, nil
}

// FallbackContent pairs the guessed item for query with every searchable
// site. Category filtering is skipped because the type is only a guess.
func (s *Service) FallbackContent(query string) models.ContentResult {
	item := metadata.Fallback(query, s.now())
	return models.ContentResult{
		Content:     item,
		AvailableOn: scoring.MatchAll(s.sites.Searchable(), item),
	}
}

func guard(branch string, fn func() ([]models.Suggestion, error)) (out []models.Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%s branch panicked: %v", branch, r)
		}
	}()
	return fn()
}
