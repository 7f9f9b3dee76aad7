package catalog

import (
	"strings"

	"github.com/merchlink/merchlink/pkg/merchlink/ingest"
)

// Entry is one known phrase mapped to a destination link.
type Entry struct {
	ID       int      // load-order position, stable within one catalog
	Phrase   string   // normalized phrase text
	Keywords []string // tokens of Phrase, always non-empty
	URL      string
	Anchor   string
}

// Row is a raw source row before normalization and validation.
type Row struct {
	Phrase string
	URL    string
	Anchor string
}

// Stats reports the outcome of one catalog load.
type Stats struct {
	Loaded  int
	Dropped int
}

// Catalog is the ordered set of entries built from one source, together
// with an exact-phrase index. A catalog is immutable once built; loads
// replace it wholesale.
type Catalog struct {
	entries  []Entry
	byPhrase map[string][]int
}

// New builds a catalog and its phrase index from validated entries.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries:  entries,
		byPhrase: make(map[string][]int, len(entries)),
	}
	for i, e := range entries {
		c.byPhrase[e.Phrase] = append(c.byPhrase[e.Phrase], i)
	}
	return c
}

// FromRows normalizes and validates raw rows. Rows whose normalized phrase,
// URL, or anchor is empty after trimming are dropped and counted in Stats;
// they never enter matching.
func FromRows(rows []Row) (*Catalog, Stats) {
	var entries []Entry
	var stats Stats
	for _, r := range rows {
		phrase := ingest.Normalize(r.Phrase)
		url := strings.TrimSpace(r.URL)
		anchor := strings.TrimSpace(r.Anchor)
		if phrase == "" || url == "" || anchor == "" {
			stats.Dropped++
			continue
		}
		entries = append(entries, Entry{
			ID:       len(entries),
			Phrase:   phrase,
			Keywords: ingest.Tokens(phrase),
			URL:      url,
			Anchor:   anchor,
		})
	}
	stats.Loaded = len(entries)
	return New(entries), stats
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Empty reports whether the catalog has no entries.
func (c *Catalog) Empty() bool { return c.Len() == 0 }

// Entries returns the entries in load order. Callers must not mutate the
// returned slice.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// ByPhrase returns every entry whose normalized phrase equals text exactly,
// in load order.
func (c *Catalog) ByPhrase(text string) []Entry {
	if c == nil {
		return nil
	}
	idxs, ok := c.byPhrase[text]
	if !ok {
		return nil
	}
	out := make([]Entry, len(idxs))
	for i, idx := range idxs {
		out[i] = c.entries[idx]
	}
	return out
}
