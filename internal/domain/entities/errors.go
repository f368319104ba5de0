package entities

import (
	"errors"
	"fmt"
)

// ErrRepositoryMissing is returned when the configured checkout does not exist.
var ErrRepositoryMissing = errors.New("repository does not exist")

// ReferenceError reports a revision that cannot be found in the repository.
// Callers may treat it as "no usable checkpoint" and fall back to a full sync.
type ReferenceError struct {
	Ref string
	Err error
}

func (e *ReferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reference %q not found: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("reference %q not found", e.Ref)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// ParseError reports diff output that matched no known line grammar.
// Line is the offending line and Output the full raw text, so a CLI can print
// both before exiting.
type ParseError struct {
	Backend string
	Line    string
	Output  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unable to parse diff line %q", e.Backend, e.Line)
}
