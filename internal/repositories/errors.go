package repositories

import "errors"

// Sentinel errors returned by repositories. Anything else coming out of a
// repository is a storage-layer failure and is wrapped, never swallowed.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
