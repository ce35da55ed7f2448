package semtag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotASemanticVersion matches any *NotASemanticVersionError.
	ErrNotASemanticVersion = errors.New("not a semantic version")

	// ErrAmbiguousVersionScheme matches any *AmbiguousVersionSchemeError.
	ErrAmbiguousVersionScheme = errors.New("ambiguous version scheme")
)

// NotASemanticVersionError is returned when no suffix of a tag name parses as
// major.minor.patch[-pre][+build].
type NotASemanticVersionError struct {
	Input string
}

func (e *NotASemanticVersionError) Error() string {
	return fmt.Sprintf("can't find semver format in %q", e.Input)
}

// Is reports whether target is ErrNotASemanticVersion.
func (e *NotASemanticVersionError) Is(target error) bool {
	return target == ErrNotASemanticVersion
}

// AmbiguousVersionSchemeError is returned when tags use several naming
// prefixes and neither "" nor "v" is available as a default.
type AmbiguousVersionSchemeError struct {
	Prefixes []string
}

func (e *AmbiguousVersionSchemeError) Error() string {
	quoted := make([]string, len(e.Prefixes))
	for i, p := range e.Prefixes {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf("ambiguous version scheme: tags use %d prefixes (%s)",
		len(e.Prefixes), strings.Join(quoted, ", "))
}

// Is reports whether target is ErrAmbiguousVersionScheme.
func (e *AmbiguousVersionSchemeError) Is(target error) bool {
	return target == ErrAmbiguousVersionScheme
}
