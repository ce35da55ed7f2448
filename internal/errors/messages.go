package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the ccclog CLI.
// These templates ensure consistent, actionable error messages.

// generateUsage is the synopsis shown with argument errors of the root command.
const generateUsage = "ccclog [path] [<from>..<to>]"

// NotARepository creates an error when path is not inside a git repository.
func NotARepository(path string, err error) *CLIError {
	e := NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run ccclog inside a git working tree, or pass its path: ccclog path/to/repo",
		"Initialize a repository with: git init",
	)
	e.Cause = err
	return e
}

// AmbiguousVersionScheme creates an error when tags mix several prefixes and
// none of them is a default scheme. One retry is suggested per prefix.
func AmbiguousVersionScheme(prefixes []string, err error) *CLIError {
	quoted := make([]string, len(prefixes))
	remediation := make([]string, 0, len(prefixes)+1)
	for i, p := range prefixes {
		quoted[i] = fmt.Sprintf("%q", p)
		remediation = append(remediation, fmt.Sprintf("Retry with: ccclog --tag-prefix %q", p))
	}
	remediation = append(remediation, "Or set tag_prefix in .ccclog.yml")

	e := NewConfigError(
		fmt.Sprintf("tags use several version schemes (%s); choose one", strings.Join(quoted, ", ")),
		remediation...,
	)
	e.Cause = err
	return e
}

// UnsupportedRevisionSpec creates an error for a revision argument that is not a two-dot range.
func UnsupportedRevisionSpec(spec string, err error) *CLIError {
	e := NewArgumentErrorWithUsage(
		fmt.Sprintf("unsupported revision spec: %q", spec),
		generateUsage,
		"Use a two-dot range such as v1.0.0..v1.1.0",
		"Omit the end to compare against HEAD (v1.0.0..), or use --all for the whole history",
	)
	e.Cause = err
	return e
}

// UnknownRevision creates an error when a range endpoint names no tag or commit.
func UnknownRevision(rev string, err error) *CLIError {
	e := NewPrerequisiteError(
		fmt.Sprintf("unknown revision: %s", rev),
		"List the versions ccclog recognises with: ccclog tags",
		"Check the spelling of the tag, branch or commit",
	)
	e.Cause = err
	return e
}

// InvalidIgnorePattern creates an error for an ignore_summary value that does not compile.
func InvalidIgnorePattern(pattern string, err error) *CLIError {
	e := NewArgumentError(
		fmt.Sprintf("invalid --ignore-summary pattern %q: %v", pattern, err),
		"The pattern is a Go regular expression (RE2 syntax)",
		"Example: ccclog --ignore-summary '^(wip|fixup!)'",
	)
	e.Cause = err
	return e
}

// InvalidConfigValue creates an error for a configuration value rejected by validation.
func InvalidConfigValue(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Show the effective configuration with: ccclog config show",
		"List all options with: ccclog config keys",
	)
}

// ConfigParseError creates an error for invalid config file format.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: ccclog config init --force",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'ccclog <command> --help' to see valid options",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	e := NewRuntimeError(
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
	e.Cause = err
	return e
}
