// Package report turns a match set into its exportable surfaces: rendered
// link markup and a YAML debug record.
package report

import (
	"crypto/rand"
	"fmt"
	"html"
	"io"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/merchlink/merchlink/pkg/merchlink/match"
)

// Builder stamps reports with monotonic ULID run identifiers.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewRunID mints an identifier for one matching run.
func (b *Builder) NewRunID() string {
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// Record is one match projected for the debug report.
type Record struct {
	Phrase    string `yaml:"phrase"`
	URL       string `yaml:"url"`
	Anchor    string `yaml:"anchor"`
	MatchType string `yaml:"matchType"`
	Score     int    `yaml:"score"`
}

// Report is the serialized debug record for one matching run.
type Report struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Matches []Record `yaml:"matches"`
}

// Build projects a match set into a report, preserving match-set order.
func Build(id, title string, set match.Set) Report {
	r := Report{
		ID:      id,
		Title:   title,
		Matches: make([]Record, 0, len(set)),
	}
	for _, c := range set {
		r.Matches = append(r.Matches, Record{
			Phrase:    c.Entry.Phrase,
			URL:       c.Entry.URL,
			Anchor:    c.Entry.Anchor,
			MatchType: string(c.Type),
			Score:     c.Score,
		})
	}
	return r
}

// Encode writes the report as indented YAML.
func (r Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// Decode reads a report back from its YAML form.
func Decode(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}

// RenderLinks writes the match set as an ordered list of links, each
// opening in a new browsing context without referrer or opener leakage.
// An empty set renders nothing.
func RenderLinks(w io.Writer, set match.Set) error {
	if len(set) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "<ul class=\"merchlink-results\">\n"); err != nil {
		return err
	}
	for _, c := range set {
		line := fmt.Sprintf(
			"  <li><a href=\"%s\" target=\"_blank\" rel=\"noreferrer noopener\">%s</a></li>\n",
			html.EscapeString(c.Entry.URL), html.EscapeString(c.Entry.Anchor),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul>\n")
	return err
}
