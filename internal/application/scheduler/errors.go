package scheduler

import (
	crerr "github.com/cockroachdb/errors"
)

// Error taxonomy. Every business-rule failure wraps one of these sentinels
// so callers can classify with errors.Is; descriptive context is attached
// at the failure site.
var (
	// ErrNotFound means a referenced player or session id does not exist.
	ErrNotFound = crerr.New("not found")

	// ErrInvalidState means a business rule rejected the operation: class
	// full, player already enrolled, player not on roster, insufficient
	// credit, or nothing to copy. The operation is a no-op.
	ErrInvalidState = crerr.New("invalid state")
)
