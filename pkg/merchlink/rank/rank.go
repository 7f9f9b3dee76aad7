// Package rank orders match candidates and collapses duplicate
// destinations into the final match set.
package rank

import (
	"sort"

	"github.com/merchlink/merchlink/pkg/merchlink/match"
)

type destination struct {
	url    string
	anchor string
}

// Rank sorts candidates by score descending and keeps the first candidate
// per distinct (URL, Anchor) destination. The sort is stable, so tied
// candidates retain their discovery order — which the exact strategy has
// already arranged longest-phrase-first.
func Rank(cands []match.Candidate) match.Set {
	ordered := make([]match.Candidate, len(cands))
	copy(ordered, cands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	seen := make(map[destination]struct{}, len(ordered))
	set := make(match.Set, 0, len(ordered))
	for _, c := range ordered {
		key := destination{url: c.Entry.URL, anchor: c.Entry.Anchor}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		set = append(set, c)
	}
	return set
}
