package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions honour color.NoColor, which fatih/color derives from
	// NO_COLOR and the terminal state of stdout.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bulletColor = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatOptions controls how a CLIError is rendered.
type FormatOptions struct {
	// Plain disables colors.
	Plain bool
	// ASCII replaces the bullet glyph with "-".
	ASCII bool
}

// FormatError formats a CLIError for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func FormatError(err *CLIError) string {
	return Format(err, FormatOptions{})
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	return Format(err, FormatOptions{Plain: true})
}

// Format renders err as a header line followed by the usage and remediation
// blocks when present.
func Format(err *CLIError, opts FormatOptions) string {
	if err == nil {
		return ""
	}

	paint := func(fn func(a ...interface{}) string, s string) string {
		if opts.Plain {
			return s
		}
		return fn(s)
	}
	bullet := "•"
	if opts.ASCII {
		bullet = "-"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		paint(errorLabel, "Error"),
		paint(categoryFmt, err.Category.String()),
		paint(errorMsg, err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", paint(usageLabel, "Usage: "), paint(usageText, err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(fixLabel, "To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(bulletColor, bullet), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError, opts FormatOptions) {
	if err == nil {
		return
	}
	fmt.Fprint(w, Format(err, opts))
}

// FormatSimpleError formats a regular error with a category.
// Use this when you have a plain error and want structured output.
func FormatSimpleError(err error, category ErrorCategory, opts FormatOptions) string {
	if err == nil {
		return ""
	}
	return Format(&CLIError{Category: category, Message: err.Error()}, opts)
}
