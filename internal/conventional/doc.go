// Package conventional classifies commit messages following the
// Conventional Commits format.
//
// This package implements:
//   - CommitType, an open enumeration of canonical types plus Custom and Others
//   - Parse, which never fails and degrades non-conforming messages to Others
//   - Order, the display ranking used when grouping commits by type
//
// See https://www.conventionalcommits.org/en/v1.0.0/ for the message grammar.
package conventional
