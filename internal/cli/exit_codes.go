package cli

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ariel-frischer/ccclog/internal/config"
	clierrors "github.com/ariel-frischer/ccclog/internal/errors"
	"github.com/ariel-frischer/ccclog/internal/history"
	"github.com/ariel-frischer/ccclog/internal/semtag"
)

// Exit codes for the ccclog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates any failure without a more specific code
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid arguments, flags or configuration values
	ExitInvalidArguments = 3

	// ExitRepositoryNotFound indicates the path is not inside a git repository
	ExitRepositoryNotFound = 4

	// ExitAmbiguousVersionScheme indicates tags use several prefixes and none was chosen
	ExitAmbiguousVersionScheme = 5
)

// ExitError carries an explicit exit code.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// invalidArguments marks err as a usage error.
func invalidArguments(err error) error {
	if clierrors.IsCLIError(err) {
		return &ExitError{Code: ExitInvalidArguments, Err: err}
	}
	return &ExitError{Code: ExitInvalidArguments, Err: clierrors.Wrap(err, clierrors.Argument)}
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var unknownKey config.ErrUnknownKey
	var validationErr *config.ValidationError
	switch {
	case errors.Is(err, history.ErrRepositoryNotFound):
		return ExitRepositoryNotFound
	case errors.Is(err, semtag.ErrAmbiguousVersionScheme):
		return ExitAmbiguousVersionScheme
	case errors.Is(err, history.ErrUnsupportedRevisionSpec),
		errors.Is(err, doublestar.ErrBadPattern),
		errors.As(err, &unknownKey):
		return ExitInvalidArguments
	case errors.As(err, &validationErr) && validationErr.Field != "":
		return ExitInvalidArguments
	}
	return ExitFailure
}

// toCLIError converts err into the structured error printed to the user.
func toCLIError(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		ambiguous   *semtag.AmbiguousVersionSchemeError
		unsupported *history.UnsupportedRevisionSpecError
		unknownRev  *history.UnknownRevisionError
		validation  *config.ValidationError
		notRepo     *repositoryError
	)
	switch {
	case errors.As(err, &notRepo) && errors.Is(err, history.ErrRepositoryNotFound):
		return clierrors.NotARepository(notRepo.Path, err)
	case errors.As(err, &ambiguous):
		return clierrors.AmbiguousVersionScheme(ambiguous.Prefixes, err)
	case errors.As(err, &unsupported):
		return clierrors.UnsupportedRevisionSpec(unsupported.Spec, err)
	case errors.As(err, &unknownRev):
		return clierrors.UnknownRevision(unknownRev.Revision, err)
	case errors.As(err, &validation) && validation.Field == "ignore_summary":
		return clierrors.InvalidIgnorePattern(validation.Value, err)
	case errors.As(err, &validation) && validation.Field != "":
		return clierrors.InvalidConfigValue(err)
	case errors.As(err, &validation):
		return clierrors.ConfigParseError(validation.FilePath, err)
	}
	return clierrors.Wrap(err, clierrors.Runtime)
}

// repositoryError records the path a repository was opened from.
type repositoryError struct {
	Path string
	Err  error
}

func (e *repositoryError) Error() string {
	return e.Err.Error()
}

func (e *repositoryError) Unwrap() error {
	return e.Err
}
