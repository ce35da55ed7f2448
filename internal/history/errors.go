package history

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

var (
	// ErrRepositoryNotFound is returned by Open when no repository contains
	// the given path.
	ErrRepositoryNotFound = git.ErrRepositoryNotExists

	// ErrUnsupportedRevisionSpec matches any *UnsupportedRevisionSpecError.
	ErrUnsupportedRevisionSpec = errors.New("unsupported revision spec")
)

// UnsupportedRevisionSpecError is returned when an explicit revision spec is
// not a two-dot range.
type UnsupportedRevisionSpecError struct {
	Spec string
}

func (e *UnsupportedRevisionSpecError) Error() string {
	return fmt.Sprintf("unsupported revision spec %q: only two-dot ranges (A..B, A.., ..B) are supported", e.Spec)
}

// Is reports whether target is ErrUnsupportedRevisionSpec.
func (e *UnsupportedRevisionSpecError) Is(target error) bool {
	return target == ErrUnsupportedRevisionSpec
}

// UnknownRevisionError is returned when a range endpoint resolves to no
// reference or commit.
type UnknownRevisionError struct {
	Revision string
	Err      error
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("resolving revision %q: %v", e.Revision, e.Err)
}

func (e *UnknownRevisionError) Unwrap() error {
	return e.Err
}
