package changelog

import (
	"fmt"
	"io"
	"strings"
)

// DefaultRootIndentLevel is the heading depth of release headings.
const DefaultRootIndentLevel = 2

// RenderOptions controls markdown output.
type RenderOptions struct {
	// RootIndentLevel is the heading depth of release headings; section
	// headings are one level deeper. Zero means DefaultRootIndentLevel.
	RootIndentLevel int
	// EmailLinks renders authors with a known email as mailto links.
	EmailLinks bool
}

// RenderMarkdown writes doc as markdown. Releases and sections are
// separated by blank lines. When the document carries links, headings and
// hashes become reference links whose targets follow the last release.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(doc *Document, w io.Writer, opts RenderOptions) error {
	level := opts.RootIndentLevel
	if level <= 0 {
		level = DefaultRootIndentLevel
	}

	var links []string
	releases := make([]string, 0, len(doc.Releases))
	for _, rel := range doc.Releases {
		heading, link := formatReleaseHeading(rel, level)
		if link != "" {
			links = append(links, link)
		}

		sections := make([]string, 0, len(rel.Sections))
		for _, sec := range rel.Sections {
			text, secLinks := formatSection(sec, level+1, opts)
			sections = append(sections, text)
			links = append(links, secLinks...)
		}

		releases = append(releases, heading+"\n"+strings.Join(sections, "\n"))
	}

	out := strings.Join(releases, "\n")
	if len(links) > 0 {
		out += "\n" + strings.Join(links, "\n") + "\n"
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(doc *Document, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(doc, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatReleaseHeading returns the heading line and its link definition.
func formatReleaseHeading(rel Release, level int) (string, string) {
	hashes := strings.Repeat("#", level)
	label := rel.Name
	if rel.CompareURL != "" {
		label = "[" + rel.Name + "]"
	}

	var link string
	if rel.CompareURL != "" {
		link = fmt.Sprintf("[%s]: %s", rel.Name, rel.CompareURL)
	}

	if rel.Unreleased {
		return hashes + " " + label, link
	}
	return fmt.Sprintf("%s %s - %s", hashes, label, rel.Date), link
}

// formatSection returns the section text ending in a newline and the link
// definitions of its entries.
func formatSection(sec Section, level int, opts RenderOptions) (string, []string) {
	var b strings.Builder
	var links []string

	b.WriteString(strings.Repeat("#", level) + " " + sec.Title + "\n")
	for _, e := range sec.Entries {
		author := formatAuthor(e, opts.EmailLinks)
		if e.URL != "" {
			fmt.Fprintf(&b, "- [[%s]] %s (%s)\n", e.ShortHash, e.Description, author)
			links = append(links, fmt.Sprintf("[%s]: %s", e.ShortHash, e.URL))
			continue
		}
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", e.ShortHash, e.Description, author)
	}
	return b.String(), links
}

func formatAuthor(e Entry, emailLinks bool) string {
	name := e.Author.DisplayName()
	if emailLinks && e.Author.Email != "" {
		return fmt.Sprintf("[%s](mailto:%s)", name, e.Author.Email)
	}
	return name
}
