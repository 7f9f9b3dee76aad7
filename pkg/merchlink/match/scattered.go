package match

import "github.com/merchlink/merchlink/pkg/merchlink/catalog"

// Scattered matches an entry when every one of its keywords appears in the
// query token set, independent of order and adjacency. Single pass over
// the catalog, O(entries × keywords per entry).
type Scattered struct{}

// Name implements Strategy.
func (Scattered) Name() string { return StrategyScattered }

// Match implements Strategy. Scattered candidates carry no span; the
// keyword union across the match set drives highlighting.
func (Scattered) Match(c *catalog.Catalog, q Query) []Candidate {
	var out []Candidate
	for _, e := range c.Entries() {
		if !allPresent(e.Keywords, q) {
			continue
		}
		out = append(out, Candidate{
			Entry: e,
			Type:  TypeScattered,
			Score: len(e.Keywords),
		})
	}
	return out
}

func allPresent(keywords []string, q Query) bool {
	for _, kw := range keywords {
		if !q.HasToken(kw) {
			return false
		}
	}
	return true
}
