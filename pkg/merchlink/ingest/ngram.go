package ingest

import "strings"

// DefaultMaxWindow bounds the phrase window: catalog phrases longer than
// this many words can never be matched exactly.
const DefaultMaxWindow = 4

// Windows returns every contiguous token window of size min(maxWindow,
// len(tokens)) down to 1, each size scanned left to right. A window whose
// joined text already appeared inside a longer window is suppressed, so a
// consumer trying windows in order always sees the longest form of
// overlapping phrases first ("soft cotton" before "cotton").
func Windows(tokens []string, maxWindow int) []string {
	if len(tokens) == 0 {
		return nil
	}
	if maxWindow <= 0 {
		maxWindow = DefaultMaxWindow
	}
	if maxWindow > len(tokens) {
		maxWindow = len(tokens)
	}

	seen := make(map[string]struct{})
	var out []string
	for n := maxWindow; n >= 1; n-- {
		for i := 0; i+n <= len(tokens); i++ {
			text := strings.Join(tokens[i:i+n], " ")
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}
			out = append(out, text)
		}
	}
	return out
}
