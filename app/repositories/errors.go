package repositories

import "errors"

var (
	// ErrDuplicateUsername reports a unique-constraint violation on the
	// username column. The database index is the authoritative guard; the
	// application-level lookup only provides a friendlier fast path.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrNotFound reports an update against an identifier that no longer
	// exists.
	ErrNotFound = errors.New("record not found")
)
