// Package lexical implements the case-insensitive text matching used for
// catalog search and suggestion ordering.
package lexical

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// MinQueryLen is the shortest query that is matched at all.
const MinQueryLen = 2

var folder = cases.Fold()

// Fold returns the case-folded form used for every comparison.
func Fold(s string) string {
	return folder.String(s)
}

// Normalize trims and folds a query. ok is false when the query is too
// short to be matched.
func Normalize(query string) (string, bool) {
	q := Fold(strings.TrimSpace(query))
	if len([]rune(q)) < MinQueryLen {
		return "", false
	}
	return q, true
}

// Matches reports whether the folded query is a substring of any field.
func Matches(foldedQuery string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(Fold(f), foldedQuery) {
			return true
		}
	}
	return false
}

// HasPrefix reports whether title starts with the folded query.
func HasPrefix(title, foldedQuery string) bool {
	return strings.HasPrefix(Fold(title), foldedQuery)
}

// PrefixFirst stably reorders items so those whose title starts with the
// folded query come first.
func PrefixFirst[T any](items []T, foldedQuery string, title func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return prefixRank(title(b), foldedQuery) - prefixRank(title(a), foldedQuery)
	})
}

func prefixRank(title, q string) int {
	if HasPrefix(title, q) {
		return 1
	}
	return 0
}
