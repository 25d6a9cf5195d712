package store

import "errors"

var (
	// ErrNotFound is returned when a point lookup misses. Absence is a
	// normal outcome, distinct from storage/transport failures.
	ErrNotFound = errors.New("store: entity not found")
)
