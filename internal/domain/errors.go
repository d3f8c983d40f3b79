package domain

import "errors"

// Sentinel errors shared across the pipeline. Handlers map these onto
// HTTP status codes; everything else surfaces as an internal failure.
var (
	// ErrInvalidURL is returned when a submitted URL cannot be normalized.
	ErrInvalidURL = errors.New("invalid url")

	// ErrEmptyInput is returned when text analysis receives empty or
	// whitespace-only input.
	ErrEmptyInput = errors.New("empty input")

	// ErrNotFound is returned when a record lookup misses.
	ErrNotFound = errors.New("not found")
)
