package lexical

import (
	"slices"

	"github.com/tchap/go-patricia/v2/patricia"
)

// PrefixIndex maps folded titles to their positions in the source slice so
// prefix lookups visit only the matching subtree. It is immutable once built
// and safe for concurrent readers.
type PrefixIndex struct {
	trie *patricia.Trie
}

func NewPrefixIndex(titles []string) *PrefixIndex {
	trie := patricia.NewTrie()
	for i, t := range titles {
		key := patricia.Prefix(Fold(t))
		if existing := trie.Get(key); existing != nil {
			trie.Set(key, append(existing.([]int), i))
			continue
		}
		trie.Insert(key, []int{i})
	}
	return &PrefixIndex{trie: trie}
}

// Positions returns, in ascending order, the positions of titles that start
// with the folded query.
func (ix *PrefixIndex) Positions(foldedQuery string) []int {
	var out []int
	_ = ix.trie.VisitSubtree(patricia.Prefix(foldedQuery), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.([]int)...)
		return nil
	})
	slices.Sort(out)
	return out
}

// RankIndexed filters items to those whose fields contain query and puts
// title-prefix matches first, keeping input order within each group. ix must
// index items' titles. Queries shorter than MinQueryLen return nil.
func RankIndexed[T any](ix *PrefixIndex, query string, items []T, fields func(T) []string) []T {
	q, ok := Normalize(query)
	if !ok {
		return nil
	}
	prefixed := ix.Positions(q)
	seen := make(map[int]bool, len(prefixed))
	out := make([]T, 0, len(prefixed))
	for _, i := range prefixed {
		seen[i] = true
		out = append(out, items[i])
	}
	for i, it := range items {
		if seen[i] {
			continue
		}
		if Matches(q, fields(it)) {
			out = append(out, it)
		}
	}
	return out
}
