package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/ccclog/internal/conventional"
)

// TypeStyle defines the color and icons for a commit type.
type TypeStyle struct {
	Color     *color.Color
	Icon      string
	ASCIIIcon string
}

// typeStyles maps canonical kinds to their terminal styling. Kinds without
// an entry use defaultStyle.
var typeStyles = map[conventional.Kind]TypeStyle{
	conventional.KindFeat:     {Color: color.New(color.FgGreen), Icon: "✓", ASCIIIcon: "+"},
	conventional.KindFix:      {Color: color.New(color.FgYellow), Icon: "⚡", ASCIIIcon: "*"},
	conventional.KindRefactor: {Color: color.New(color.FgBlue), Icon: "~", ASCIIIcon: "~"},
	conventional.KindPerf:     {Color: color.New(color.FgBlue), Icon: "»", ASCIIIcon: ">"},
	conventional.KindRevert:   {Color: color.New(color.FgRed), Icon: "✗", ASCIIIcon: "x"},
	conventional.KindSecurity: {Color: color.New(color.FgMagenta), Icon: "🔒", ASCIIIcon: "!"},
	conventional.KindDoc:      {Color: color.New(color.FgCyan), Icon: "•", ASCIIIcon: "-"},
}

var defaultStyle = TypeStyle{Color: color.New(color.FgWhite), Icon: "•", ASCIIIcon: "-"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	ASCII    bool // Use ASCII icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a human-oriented preview of doc with colored type
// headers and wrapped entries.
func FormatTerminal(doc *Document, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, rel := range doc.Releases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatRelease(rel, w, opts, width); err != nil {
			return fmt.Errorf("formatting release %s: %w", rel.Name, err)
		}
	}
	return nil
}

func formatRelease(rel Release, w io.Writer, opts FormatOptions, width int) error {
	if err := writeReleaseHeader(rel, w, opts); err != nil {
		return err
	}
	for _, sec := range rel.Sections {
		if err := writeSection(sec, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeReleaseHeader writes the release header line.
func writeReleaseHeader(rel Release, w io.Writer, opts FormatOptions) error {
	header := rel.Name
	if rel.Date != "" {
		header = fmt.Sprintf("%s (%s)", rel.Name, rel.Date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "%s\n", bold(header))
	return err
}

func styleFor(t conventional.CommitType) TypeStyle {
	if s, ok := typeStyles[t.Kind]; ok {
		return s
	}
	return defaultStyle
}

// writeSection writes a single type header with its entries.
func writeSection(sec Section, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(sec.Type)

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n%s\n", sec.Title); err != nil {
			return err
		}
	} else {
		icon := style.Icon
		if opts.ASCII {
			icon = style.ASCIIIcon
		}
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(icon), colored(sec.Title)); err != nil {
			return err
		}
	}

	for _, e := range sec.Entries {
		if err := writeEntry(e, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(e Entry, style TypeStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  " + e.ShortHash + " "
	text := e.Description
	if e.Scope != "" {
		text = e.Scope + ": " + text
	}
	suffix := " (" + e.Author.DisplayName() + ")"

	if opts.Plain {
		marker := ""
		if e.Breaking {
			marker = "[breaking] "
		}
		_, err := fmt.Fprintf(w, "%s%s%s%s\n", prefix, marker, text, suffix)
		return err
	}

	wrapped := wrapText(text+suffix, width-len(prefix), strings.Repeat(" ", len(prefix)))

	faint := color.New(color.Faint).SprintFunc()
	marker := ""
	if e.Breaking {
		marker = color.New(color.FgRed, color.Bold).Sprint("BREAKING") + " "
	}
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s%s\n", faint(prefix), marker, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
