package boundary

import "errors"

// Compilation failures are immediate and fatal to setup; nothing is
// downgraded or retried. Each class is a sentinel so callers can test for
// the failure kind with errors.Is.
var (
	ErrUnknownSpecie     = errors.New("unknown specie")
	ErrUnknownBoundary   = errors.New("unknown boundary")
	ErrDuplicateSpec     = errors.New("duplicate specification")
	ErrForbiddenBoundary = errors.New("value specified for no-flux boundary")
	ErrExprDomain        = errors.New("expression uses a variable other than t")
	ErrMissingIC         = errors.New("missing initial condition")
)
