// Package changelog turns partitioned release buckets into a changelog
// document and writes it out.
//
// This package implements:
//   - Document, the release/section/entry model built from release buckets
//   - Markdown rendering with reference-style compare and commit links
//   - A colored terminal preview
//   - JSON and YAML export of the document
//   - Conversion of git remote URLs into browsable repository URLs
package changelog
