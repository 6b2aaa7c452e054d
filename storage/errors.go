package storage

import "errors"

// Common storage errors.
var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")

	// ErrEmptyKey is returned when a decision has no key.
	ErrEmptyKey = errors.New("empty key")
)
