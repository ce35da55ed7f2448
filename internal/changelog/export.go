package changelog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"
)

// ValidFormats returns the accepted output formats.
func ValidFormats() []Format {
	return []Format{FormatMarkdown, FormatJSON, FormatYAML, FormatText}
}

// ParseFormat validates a format name. Matching is case-insensitive and
// "md" and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (valid: markdown, json, yaml, text)", s)
}

// WriteOptions bundles the options of every format.
type WriteOptions struct {
	Render   RenderOptions
	Terminal FormatOptions
}

// Write writes doc in the given format.
func Write(doc *Document, w io.Writer, format Format, opts WriteOptions) error {
	switch format {
	case FormatMarkdown, "":
		return RenderMarkdown(doc, w, opts.Render)
	case FormatJSON:
		return ExportJSON(doc, w)
	case FormatYAML:
		return ExportYAML(doc, w)
	case FormatText:
		return FormatTerminal(doc, w, opts.Terminal)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// ExportJSON writes doc as indented JSON.
func ExportJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// ExportYAML writes doc as YAML.
func ExportYAML(doc *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return nil
}
