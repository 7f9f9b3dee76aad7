package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMissingColumn   = errors.New("required column missing")
	ErrEmptySource     = errors.New("empty catalog source")
	ErrEmptyCatalog    = errors.New("no catalog loaded")
	ErrEmptyQuery      = errors.New("empty query text")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrUnknownStrategy = errors.New("unknown matching strategy")
)
