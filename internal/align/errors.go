package align

import (
	"errors"
	"fmt"
)

// Errors returned by the aligners.
var (
	// ErrUnrecognizedPolicy is wrapped by every *PolicyError.
	ErrUnrecognizedPolicy = errors.New("unrecognized policy")

	// ErrNoRules indicates match alignment was requested with no rules configured.
	ErrNoRules = errors.New("no alignments available")

	// ErrUnknownRule indicates a named rule is not configured.
	ErrUnknownRule = errors.New("unknown alignment")
)

// PolicyKind names the rule setting a PolicyError refers to.
type PolicyKind string

const (
	PolicyMultiMatch PolicyKind = "multi-match"
	PolicyPreSpace   PolicyKind = "pre-space"
)

// PolicyError reports a policy value outside the known set.
type PolicyError struct {
	Rule  string
	Kind  PolicyKind
	Value string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("unknown %s policy: %s", e.Kind, e.Value)
}

func (e *PolicyError) Unwrap() error {
	return ErrUnrecognizedPolicy
}
