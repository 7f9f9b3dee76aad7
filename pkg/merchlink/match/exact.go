package match

import (
	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
	"github.com/merchlink/merchlink/pkg/merchlink/ingest"
)

// ExactFallback matches in two passes. Pass 1 tries every query window,
// longest first, against the catalog's normalized phrases; a hit scores
// the phrase's word count. Pass 2 picks up still-unmatched single-keyword
// entries whose keyword appears as a whole query token, scoring 1.
//
// A multi-word phrase whose words appear in the query non-contiguously is
// never matched by either pass. That precision tradeoff is deliberate;
// Scattered is the recall-oriented alternative.
type ExactFallback struct {
	// MaxWindow bounds the phrase window; zero means ingest.DefaultMaxWindow.
	MaxWindow int
}

// Name implements Strategy.
func (ExactFallback) Name() string { return StrategyExact }

// Match implements Strategy. Each entry matches at most once per run: an
// entry taken in pass 1 is excluded from pass 2.
func (s ExactFallback) Match(c *catalog.Catalog, q Query) []Candidate {
	matched := make(map[int]struct{})
	var out []Candidate

	max := s.MaxWindow
	if max <= 0 {
		max = ingest.DefaultMaxWindow
	}

	for _, window := range ingest.Windows(q.Tokens, max) {
		for _, e := range c.ByPhrase(window) {
			if _, ok := matched[e.ID]; ok {
				continue
			}
			matched[e.ID] = struct{}{}
			out = append(out, Candidate{
				Entry: e,
				Type:  TypeExact,
				Score: len(e.Keywords),
				Span:  window,
			})
		}
	}

	for _, e := range c.Entries() {
		if _, ok := matched[e.ID]; ok {
			continue
		}
		if len(e.Keywords) != 1 {
			continue
		}
		if !q.HasToken(e.Keywords[0]) {
			continue
		}
		matched[e.ID] = struct{}{}
		out = append(out, Candidate{
			Entry: e,
			Type:  TypeFallback,
			Score: 1,
			Span:  e.Keywords[0],
		})
	}

	return out
}
