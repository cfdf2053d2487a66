package service

import "errors"

// Service-level sentinels. CLI command handlers translate these into exit
// codes and user-facing messages; anything not wrapped in one of them is a
// storage failure and is surfaced verbatim.
var (
	// ErrInvalidInput marks arguments the user can fix: unknown muscle,
	// malformed weight, out-of-range set index.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict marks state collisions: duplicate names, a second
	// session started while one is in progress.
	ErrConflict = errors.New("conflict")
)
