package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/merchlink/merchlink/pkg/merchlink/internalerr"
)

// Columns names the catalog source columns, located case-insensitively in
// the header row.
type Columns struct {
	Phrase string
	URL    string
	Anchor string
}

// DefaultColumns returns the conventional merchandising export headers.
func DefaultColumns() Columns {
	return Columns{
		Phrase: "PDP Phrase",
		URL:    "PLP URL",
		Anchor: "Anchor Text",
	}
}

// LoadCSV reads a CSV catalog source. The first record is the header row;
// all three columns must be present or the load fails with no catalog
// built. Rows that fail validation are dropped silently and counted.
func LoadCSV(r io.Reader, cols Columns) (*Catalog, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read catalog csv: %w", err)
	}
	if len(records) == 0 {
		return nil, Stats{}, internalerr.ErrEmptySource
	}

	phraseIdx, urlIdx, anchorIdx, err := resolveColumns(records[0], cols)
	if err != nil {
		return nil, Stats{}, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			Phrase: cell(rec, phraseIdx),
			URL:    cell(rec, urlIdx),
			Anchor: cell(rec, anchorIdx),
		})
	}

	cat, stats := FromRows(rows)
	return cat, stats, nil
}

func resolveColumns(header []string, cols Columns) (phrase, url, anchor int, err error) {
	if cols.Phrase == "" || cols.URL == "" || cols.Anchor == "" {
		def := DefaultColumns()
		if cols.Phrase == "" {
			cols.Phrase = def.Phrase
		}
		if cols.URL == "" {
			cols.URL = def.URL
		}
		if cols.Anchor == "" {
			cols.Anchor = def.Anchor
		}
	}

	phrase = findColumn(header, cols.Phrase)
	url = findColumn(header, cols.URL)
	anchor = findColumn(header, cols.Anchor)

	var missing []string
	if phrase < 0 {
		missing = append(missing, cols.Phrase)
	}
	if url < 0 {
		missing = append(missing, cols.URL)
	}
	if anchor < 0 {
		missing = append(missing, cols.Anchor)
	}
	if len(missing) > 0 {
		return 0, 0, 0, fmt.Errorf("%w: %s", internalerr.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return phrase, url, anchor, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
