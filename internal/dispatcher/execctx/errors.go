package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingDocument indicates the document is required but not set.
	ErrMissingDocument = errors.New("execution context: document is required")

	// ErrMissingRules indicates a rule source is required but not set.
	ErrMissingRules = errors.New("execution context: rules are required")

	// ErrReadOnly indicates the document is read-only.
	ErrReadOnly = errors.New("execution context: document is read-only")
)
