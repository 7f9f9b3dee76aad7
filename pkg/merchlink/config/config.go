// Package config loads engine configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/merchlink/merchlink/pkg/merchlink/highlight"
	"github.com/merchlink/merchlink/pkg/merchlink/ingest"
	"github.com/merchlink/merchlink/pkg/merchlink/internalerr"
	"github.com/merchlink/merchlink/pkg/merchlink/match"
)

// Config holds every tunable of a matching session.
type Config struct {
	// Strategy is "exact" (two-pass exact + single-keyword fallback) or
	// "scattered" (all keywords anywhere in the title).
	Strategy string `yaml:"strategy"`

	// MaxWindow bounds the phrase window for the exact strategy.
	MaxWindow int `yaml:"maxWindow"`

	Highlight Highlight `yaml:"highlight"`
	Columns   Columns   `yaml:"columns"`

	// DBPath, when set, persists the session catalog in a SQLite file.
	DBPath string `yaml:"dbPath"`
}

// Highlight configures the markers wrapped around matched spans.
type Highlight struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Columns overrides the catalog source header names.
type Columns struct {
	Phrase string `yaml:"phrase"`
	URL    string `yaml:"url"`
	Anchor string `yaml:"anchor"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Strategy:  match.StrategyExact,
		MaxWindow: ingest.DefaultMaxWindow,
		Highlight: Highlight{
			Open:  highlight.DefaultOpen,
			Close: highlight.DefaultClose,
		},
		Columns: Columns{
			Phrase: "PDP Phrase",
			URL:    "PLP URL",
			Anchor: "Anchor Text",
		},
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration, returning ErrInvalidConfig on any
// unusable value.
func (c Config) Validate() error {
	switch c.Strategy {
	case "", match.StrategyExact, match.StrategyScattered:
	default:
		return fmt.Errorf("%w: strategy %q", internalerr.ErrInvalidConfig, c.Strategy)
	}
	if c.MaxWindow < 0 {
		return fmt.Errorf("%w: maxWindow %d", internalerr.ErrInvalidConfig, c.MaxWindow)
	}
	if (c.Highlight.Open == "") != (c.Highlight.Close == "") {
		return fmt.Errorf("%w: highlight markers must be set together", internalerr.ErrInvalidConfig)
	}
	if c.Columns.Phrase == "" || c.Columns.URL == "" || c.Columns.Anchor == "" {
		return fmt.Errorf("%w: column names must be non-empty", internalerr.ErrInvalidConfig)
	}
	return nil
}
