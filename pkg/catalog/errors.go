package catalog

import "errors"

// Error classes surfaced by generation and writing. Callers wrap them with
// context and test with errors.Is.
var (
	// ErrConfiguration reports a malformed or missing base table entry.
	ErrConfiguration = errors.New("configuration error")

	// ErrQuota reports a negative or otherwise invalid target count.
	ErrQuota = errors.New("quota error")

	// ErrIO reports a destination that cannot be written.
	ErrIO = errors.New("io failure")
)
