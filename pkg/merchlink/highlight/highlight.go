// Package highlight wraps matched spans of the original title text in
// visual markers. It scans the original, non-normalized text left to
// right, trying candidate spans longest-first at every word boundary, so
// a longer phrase always consumes text before a shorter contained one and
// no span can overlap an already-highlighted region. Bytes outside
// matched spans are copied verbatim.
package highlight

import (
	"sort"
	"strings"

	"github.com/merchlink/merchlink/pkg/merchlink/match"
)

// Default markers wrap matches in an HTML <mark> element.
const (
	DefaultOpen  = "<mark>"
	DefaultClose = "</mark>"
)

// Highlighter renders matched spans with configurable markers.
type Highlighter struct {
	Open  string
	Close string
}

// New returns a Highlighter with the default <mark> markers.
func New() Highlighter {
	return Highlighter{Open: DefaultOpen, Close: DefaultClose}
}

// Highlight wraps every span justified by the match set in the
// highlighter's markers. Exact and fallback candidates contribute their
// spans; scattered candidates contribute their keyword union. A span's
// words must appear in order, separated by one or more non-alphanumeric
// characters, anchored on word boundaries — so "soft cotton" recovers
// "Soft-Cotton" in the original text.
func (h Highlighter) Highlight(original string, set match.Set) string {
	spans := spansFor(set)
	if len(spans) == 0 || original == "" {
		return original
	}

	openTag, closeTag := h.Open, h.Close
	if openTag == "" && closeTag == "" {
		openTag, closeTag = DefaultOpen, DefaultClose
	}

	var b strings.Builder
	b.Grow(len(original) + (len(openTag)+len(closeTag))*len(spans))

	pos := 0
	for pos < len(original) {
		if end, ok := matchAt(original, pos, spans); ok {
			b.WriteString(openTag)
			b.WriteString(original[pos:end])
			b.WriteString(closeTag)
			pos = end
			continue
		}
		b.WriteByte(original[pos])
		pos++
	}
	return b.String()
}

// spansFor collects the distinct span word-lists to try, longest text
// first so ties between equal-length spans keep match-set order.
func spansFor(set match.Set) [][]string {
	seen := make(map[string]struct{})
	var texts []string
	add := func(text string) {
		if text == "" {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
	}

	for _, c := range set {
		if c.Span != "" {
			add(c.Span)
			continue
		}
		for _, kw := range c.Entry.Keywords {
			add(kw)
		}
	}

	sort.SliceStable(texts, func(i, j int) bool {
		return len(texts[i]) > len(texts[j])
	})

	spans := make([][]string, len(texts))
	for i, text := range texts {
		spans[i] = strings.Split(text, " ")
	}
	return spans
}

// matchAt tries every span at pos, longest first, and returns the end
// offset of the first that matches on a word boundary.
func matchAt(text string, pos int, spans [][]string) (int, bool) {
	if !isAlnum(text[pos]) {
		return 0, false
	}
	if pos > 0 && isAlnum(text[pos-1]) {
		return 0, false
	}
	for _, words := range spans {
		if end, ok := matchSpan(text, pos, words); ok {
			return end, true
		}
	}
	return 0, false
}

// matchSpan matches the span's words in order starting at pos, consuming
// one-or-more non-alphanumeric bytes between words, and requires a word
// boundary after the last word.
func matchSpan(text string, pos int, words []string) (int, bool) {
	i := pos
	for wi, w := range words {
		if wi > 0 {
			j := i
			for j < len(text) && !isAlnum(text[j]) {
				j++
			}
			if j == i {
				return 0, false
			}
			i = j
		}
		if !wordAt(text, i, w) {
			return 0, false
		}
		i += len(w)
	}
	if i < len(text) && isAlnum(text[i]) {
		return 0, false
	}
	return i, true
}

// wordAt reports whether the normalized word w occurs at pos,
// case-insensitively over ASCII.
func wordAt(text string, pos int, w string) bool {
	if pos+len(w) > len(text) {
		return false
	}
	for k := 0; k < len(w); k++ {
		if lower(text[pos+k]) != w[k] {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
