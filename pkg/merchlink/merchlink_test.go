package merchlink

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/merchlink/merchlink/pkg/merchlink/config"
	"github.com/merchlink/merchlink/pkg/merchlink/internalerr"
	"github.com/merchlink/merchlink/pkg/merchlink/match"
	"github.com/merchlink/merchlink/pkg/merchlink/report"
)

const catalogCSV = `PDP Phrase,PLP URL,Anchor Text
pink dupatta,https://shop.example/dupattas,Pink Dupattas
cotton,https://shop.example/cotton,Cotton Fabrics
soft cotton,https://shop.example/soft-cotton,Soft Cotton Fabrics
`

func newTestEngine(t *testing.T, cfg config.Config) *Engine {
	t.Helper()
	e, err := New(Options{Config: cfg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func loadTestCatalog(t *testing.T, e *Engine) {
	t.Helper()
	stats, err := e.LoadCSV(context.Background(), strings.NewReader(catalogCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if stats.Loaded != 3 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestMatchExactStrategy(t *testing.T) {
	e := newTestEngine(t, config.Config{})
	loadTestCatalog(t, e)

	res, err := e.Match(context.Background(), "Soft Cotton Dupatta in Pink")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if res.RunID == "" {
		t.Error("run must carry an ID")
	}

	byURL := make(map[string]match.Candidate)
	for _, c := range res.Matches {
		byURL[c.Entry.URL] = c
	}

	soft, ok := byURL["https://shop.example/soft-cotton"]
	if !ok {
		t.Fatalf("missing 'soft cotton' match, got %+v", res.Matches)
	}
	if soft.Type != match.TypeExact || soft.Score != 2 {
		t.Errorf("soft cotton = %+v", soft)
	}

	if _, ok := byURL["https://shop.example/dupattas"]; ok {
		t.Error("'pink dupatta' must not match under the exact strategy")
	}

	// Highest score first.
	if res.Matches[0].Entry.URL != "https://shop.example/soft-cotton" {
		t.Errorf("ranking order wrong: %+v", res.Matches)
	}

	if !strings.Contains(res.Highlighted, "<mark>Soft Cotton</mark>") {
		t.Errorf("highlighted = %q", res.Highlighted)
	}
}

func TestMatchScatteredStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = match.StrategyScattered
	e := newTestEngine(t, cfg)
	loadTestCatalog(t, e)

	res, err := e.Match(context.Background(), "Soft Cotton Dupatta in Pink")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	var found bool
	for _, c := range res.Matches {
		if c.Entry.URL == "https://shop.example/dupattas" {
			found = true
			if c.Type != match.TypeScattered || c.Score != 2 {
				t.Errorf("pink dupatta = %+v", c)
			}
		}
	}
	if !found {
		t.Errorf("scattered must match 'pink dupatta', got %+v", res.Matches)
	}
}

func TestMatchGuards(t *testing.T) {
	e := newTestEngine(t, config.Config{})

	_, err := e.Match(context.Background(), "Soft Cotton")
	if !errors.Is(err, internalerr.ErrEmptyCatalog) {
		t.Errorf("match before load: err = %v", err)
	}

	loadTestCatalog(t, e)
	_, err = e.Match(context.Background(), "   ")
	if !errors.Is(err, internalerr.ErrEmptyQuery) {
		t.Errorf("blank title: err = %v", err)
	}
}

func TestExportsNoOpWithoutRun(t *testing.T) {
	e := newTestEngine(t, config.Config{})

	var links, debug bytes.Buffer
	if err := e.ExportLinks(&links); err != nil {
		t.Fatalf("ExportLinks: %v", err)
	}
	if err := e.ExportDebug(&debug); err != nil {
		t.Fatalf("ExportDebug: %v", err)
	}
	if links.Len() != 0 || debug.Len() != 0 {
		t.Error("exports without a run must write nothing")
	}
}

func TestExportsAfterRun(t *testing.T) {
	e := newTestEngine(t, config.Config{})
	loadTestCatalog(t, e)

	res, err := e.Match(context.Background(), "Soft Cotton Scarf")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	var links bytes.Buffer
	if err := e.ExportLinks(&links); err != nil {
		t.Fatalf("ExportLinks: %v", err)
	}
	if !strings.Contains(links.String(), "Soft Cotton Fabrics") {
		t.Errorf("links export = %q", links.String())
	}

	var debug bytes.Buffer
	if err := e.ExportDebug(&debug); err != nil {
		t.Fatalf("ExportDebug: %v", err)
	}
	rep, err := report.Decode(&debug)
	if err != nil {
		t.Fatalf("decode debug export: %v", err)
	}
	if rep.ID != res.RunID {
		t.Errorf("debug record ID = %q, want %q", rep.ID, res.RunID)
	}
	if len(rep.Matches) != len(res.Matches) {
		t.Errorf("debug record has %d matches, want %d", len(rep.Matches), len(res.Matches))
	}
}

func TestCatalogReplacedWholesale(t *testing.T) {
	e := newTestEngine(t, config.Config{})
	loadTestCatalog(t, e)

	second := "PDP Phrase,PLP URL,Anchor Text\nsilk,https://shop.example/silk,Silk\n"
	if _, err := e.LoadCSV(context.Background(), strings.NewReader(second)); err != nil {
		t.Fatalf("second LoadCSV: %v", err)
	}

	res, err := e.Match(context.Background(), "Soft Cotton Silk")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for _, c := range res.Matches {
		if c.Entry.Phrase != "silk" {
			t.Errorf("old catalog entry leaked into run: %+v", c)
		}
	}
}

func TestLoadErrorKeepsCatalog(t *testing.T) {
	e := newTestEngine(t, config.Config{})
	loadTestCatalog(t, e)

	bad := "Wrong,Headers\nx,y\n"
	if _, err := e.LoadCSV(context.Background(), strings.NewReader(bad)); err == nil {
		t.Fatal("bad header row must fail the load")
	}

	// The previous catalog still serves runs.
	if _, err := e.Match(context.Background(), "Soft Cotton"); err != nil {
		t.Errorf("previous catalog should remain usable: %v", err)
	}
}

func TestLastResult(t *testing.T) {
	e := newTestEngine(t, config.Config{})
	if _, ok := e.LastResult(); ok {
		t.Error("no run yet: LastResult must report false")
	}

	loadTestCatalog(t, e)
	res, err := e.Match(context.Background(), "Cotton Scarf")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	last, ok := e.LastResult()
	if !ok || last.RunID != res.RunID {
		t.Errorf("LastResult = %+v, %v", last, ok)
	}
}
