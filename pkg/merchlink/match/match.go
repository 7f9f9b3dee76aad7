// Package match turns a free-text query into scored candidates against a
// catalog. Two interchangeable strategies share the (Catalog, Query) →
// candidates contract; both are pure and retain no state between runs.
package match

import (
	"fmt"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
	"github.com/merchlink/merchlink/pkg/merchlink/ingest"
	"github.com/merchlink/merchlink/pkg/merchlink/internalerr"
)

// Type labels how a candidate was found.
type Type string

const (
	TypeExact     Type = "exact"     // contiguous multi-word phrase match
	TypeFallback  Type = "fallback"  // single-keyword token membership
	TypeScattered Type = "scattered" // all keywords present, any order
)

// Candidate is one catalog entry justified by the query.
type Candidate struct {
	Entry catalog.Entry
	Type  Type
	Score int
	// Span is the normalized query fragment that produced the match. It
	// exists only to drive highlighting and is empty for scattered
	// candidates, whose keyword union drives highlighting instead.
	Span string
}

// Set is the final ordered sequence of candidates after ranking and
// deduplication: one element per distinct (URL, Anchor) pair.
type Set []Candidate

// Query is one matching run's input: the raw title plus its derived forms.
type Query struct {
	Raw        string
	Normalized string
	Tokens     []string

	tokenSet map[string]struct{}
}

// NewQuery derives the normalized text and token forms from a raw title.
func NewQuery(raw string) Query {
	normalized := ingest.Normalize(raw)
	tokens := ingest.Tokens(normalized)
	return Query{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     tokens,
		tokenSet:   ingest.TokenSet(tokens),
	}
}

// HasToken reports whole-token membership in the query.
func (q Query) HasToken(tok string) bool {
	_, ok := q.tokenSet[tok]
	return ok
}

// Strategy produces candidates for a query against a catalog.
type Strategy interface {
	Name() string
	Match(c *catalog.Catalog, q Query) []Candidate
}

// Strategy names accepted by ForName.
const (
	StrategyExact     = "exact"
	StrategyScattered = "scattered"
)

// ForName resolves a configured strategy name.
func ForName(name string, maxWindow int) (Strategy, error) {
	switch name {
	case StrategyExact, "":
		return ExactFallback{MaxWindow: maxWindow}, nil
	case StrategyScattered:
		return Scattered{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownStrategy, name)
	}
}
