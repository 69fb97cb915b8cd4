package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup or the
	// write filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail is returned when the unique email index rejects an
	// insert.
	ErrDuplicateEmail = errors.New("email already registered")
)
