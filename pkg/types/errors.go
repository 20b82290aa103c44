package types

import "errors"

// Standard errors. Callers wrap these with context and match with errors.Is.
var (
	// ErrNotFound is returned for an unknown snapshot id, a missing
	// database file or a missing table.
	ErrNotFound = errors.New("not found")

	// ErrIO is returned when the destination cannot be created or written.
	ErrIO = errors.New("i/o failure")

	// ErrSchema is returned when a snapshot is malformed or its table
	// cannot be created.
	ErrSchema = errors.New("invalid schema")
)
