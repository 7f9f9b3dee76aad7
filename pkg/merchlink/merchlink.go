// Package merchlink matches free-text product titles against a catalog of
// merchandising phrases and produces ranked, deduplicated links plus a
// highlighted rendering of the title.
package merchlink

import (
	"context"
	"io"
	"strings"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
	"github.com/merchlink/merchlink/pkg/merchlink/config"
	"github.com/merchlink/merchlink/pkg/merchlink/highlight"
	"github.com/merchlink/merchlink/pkg/merchlink/internalerr"
	"github.com/merchlink/merchlink/pkg/merchlink/match"
	"github.com/merchlink/merchlink/pkg/merchlink/rank"
	"github.com/merchlink/merchlink/pkg/merchlink/report"
	"github.com/merchlink/merchlink/pkg/merchlink/store"
	"github.com/merchlink/merchlink/pkg/merchlink/store/memstore"
)

// Engine is the matching engine facade. It owns the catalog store and the
// configured strategy; each Match call is a pure, synchronous run over the
// most recently loaded catalog.
type Engine struct {
	store    store.Store
	cfg      config.Config
	strategy match.Strategy
	marker   highlight.Highlighter
	reports  *report.Builder

	last *Result
}

// Options configures an Engine.
type Options struct {
	// Store holds the session catalog; memstore is used when nil.
	Store  store.Store
	Config config.Config
}

// Result is the outcome of one matching run.
type Result struct {
	RunID       string
	Title       string
	Matches     match.Set
	Highlighted string
}

// New creates an Engine with the given dependencies.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, err := match.ForName(cfg.Strategy, cfg.MaxWindow)
	if err != nil {
		return nil, err
	}

	st := opts.Store
	if st == nil {
		st = memstore.New()
	}

	return &Engine{
		store:    st,
		cfg:      cfg,
		strategy: strategy,
		marker:   highlight.Highlighter{Open: cfg.Highlight.Open, Close: cfg.Highlight.Close},
		reports:  report.NewBuilder(),
	}, nil
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	return e.store.Close()
}

// LoadCSV builds a catalog from a CSV source and replaces the session
// catalog. On error the previous catalog is left untouched.
func (e *Engine) LoadCSV(ctx context.Context, r io.Reader) (catalog.Stats, error) {
	cols := catalog.Columns{
		Phrase: e.cfg.Columns.Phrase,
		URL:    e.cfg.Columns.URL,
		Anchor: e.cfg.Columns.Anchor,
	}
	cat, stats, err := catalog.LoadCSV(r, cols)
	if err != nil {
		return catalog.Stats{}, err
	}
	if err := e.store.Replace(ctx, cat); err != nil {
		return catalog.Stats{}, err
	}
	return stats, nil
}

// LoadHTML builds a catalog from an HTML page of links and replaces the
// session catalog. On error the previous catalog is left untouched.
func (e *Engine) LoadHTML(ctx context.Context, r io.Reader) (catalog.Stats, error) {
	cat, stats, err := catalog.FromHTML(r)
	if err != nil {
		return catalog.Stats{}, err
	}
	if err := e.store.Replace(ctx, cat); err != nil {
		return catalog.Stats{}, err
	}
	return stats, nil
}

// Match runs one title through normalize → match → rank → highlight. It
// fails before matching when the title is empty or no catalog is loaded.
func (e *Engine) Match(ctx context.Context, title string) (Result, error) {
	if strings.TrimSpace(title) == "" {
		return Result{}, internalerr.ErrEmptyQuery
	}

	cat, err := e.store.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	if cat.Empty() {
		return Result{}, internalerr.ErrEmptyCatalog
	}

	q := match.NewQuery(title)
	set := rank.Rank(e.strategy.Match(cat, q))

	result := Result{
		RunID:       e.reports.NewRunID(),
		Title:       title,
		Matches:     set,
		Highlighted: e.marker.Highlight(title, set),
	}
	e.last = &result
	return result, nil
}

// LastResult returns the most recent run, if any.
func (e *Engine) LastResult() (Result, bool) {
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

// ExportLinks writes the latest run's link markup. Without a prior run
// producing matches it writes nothing and returns nil.
func (e *Engine) ExportLinks(w io.Writer) error {
	if e.last == nil || len(e.last.Matches) == 0 {
		return nil
	}
	return report.RenderLinks(w, e.last.Matches)
}

// ExportDebug writes the latest run's YAML debug record. Without a prior
// run producing matches it writes nothing and returns nil.
func (e *Engine) ExportDebug(w io.Writer) error {
	if e.last == nil || len(e.last.Matches) == 0 {
		return nil
	}
	return report.Build(e.last.RunID, e.last.Title, e.last.Matches).Encode(w)
}
