package store

import "errors"

var (
	// ErrNotFound is returned when an operation references a key absent
	// from the visible scope.
	ErrNotFound = errors.New("item not found")

	// ErrDuplicateKey is returned when an insert collides with an
	// existing row on a path where that is a caller bug, such as logging
	// the same session twice. Item paths report duplicates as a skip.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStorageUnavailable wraps failures to open or transact against
	// the backing store. Not retried: the session is unusable.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
