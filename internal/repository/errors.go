package repository

import "errors"

// ErrNotFound is wrapped by every repository lookup that resolves nothing.
// Callers test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrConflict is wrapped when an insert would violate a uniqueness
// invariant (duplicate exercise name, second active session).
var ErrConflict = errors.New("conflict")
