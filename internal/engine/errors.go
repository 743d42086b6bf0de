package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrNoSelection indicates an operation requiring a selection ran
	// without one.
	ErrNoSelection = errors.New("no active selection")

	// ErrEmptySearch indicates a search with no pattern.
	ErrEmptySearch = errors.New("empty search text")
)
