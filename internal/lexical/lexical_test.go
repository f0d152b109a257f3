package lexical

import (
	"slices"
	"testing"
)

type entry struct {
	title string
	desc  string
}

func titleOf(e entry) string    { return e.title }
func fieldsOf(e entry) []string { return []string{e.title, e.desc} }

func titles(es []entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.title
	}
	return out
}

var sample = []entry{
	{"Other Site", "streams naruto episodes"},
	{"Naruto Stream", "dedicated naruto mirror"},
	{"Books Corner", "manga and novels"},
	{"naruhodo", "detective anime"},
}

var sampleIndex = NewPrefixIndex(titles(sample))

func rankSample(q string) []entry { return RankIndexed(sampleIndex, q, sample, fieldsOf) }

func TestRankPrefixBeatsSubstring(t *testing.T) {
	got := titles(rankSample("narut"))
	want := []string{"Naruto Stream", "Other Site"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankStableAmongTies(t *testing.T) {
	got := titles(rankSample("NARU"))
	want := []string{"Naruto Stream", "naruhodo", "Other Site"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankShortQuery(t *testing.T) {
	for _, q := range []string{"", " ", "n", " n "} {
		if got := rankSample(q); len(got) != 0 {
			t.Fatalf("query %q: expected no results, got %v", q, titles(got))
		}
	}
}

func TestRankNoMatch(t *testing.T) {
	if got := rankSample("zzz"); len(got) != 0 {
		t.Fatalf("expected no results, got %v", titles(got))
	}
}

func TestRankIndexedAgreesWithLinearScan(t *testing.T) {
	ix := NewPrefixIndex(titles(sample))
	for _, q := range []string{"narut", "naru", "an", "books", "streams", "x", "Other Site"} {
		want := titles(rank(q, sample, titleOf, fieldsOf))
		got := titles(RankIndexed(ix, q, sample, fieldsOf))
		if !slices.Equal(got, want) {
			t.Fatalf("query %q: indexed %v, linear %v", q, got, want)
		}
	}
}

func TestPrefixIndexDuplicateTitles(t *testing.T) {
	ix := NewPrefixIndex([]string{"Alpha", "beta", "ALPHA"})
	if got := ix.Positions("alp"); !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("unexpected positions %v", got)
	}
}

func TestExactNameRanksFirst(t *testing.T) {
	for _, e := range sample {
		got := rankSample(e.title)
		if len(got) == 0 || got[0].title != e.title {
			t.Fatalf("search(%q) ranked %v", e.title, titles(got))
		}
	}
}

// rank is the linear-scan reference for RankIndexed.
func rank[T any](query string, items []T, title func(T) string, fields func(T) []string) []T {
	q, ok := Normalize(query)
	if !ok {
		return nil
	}
	var out []T
	for _, it := range items {
		if Matches(q, fields(it)) {
			out = append(out, it)
		}
	}
	PrefixFirst(out, q, title)
	return out
}
