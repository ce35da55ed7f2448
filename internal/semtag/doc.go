// Package semtag parses tag names into prefixed semantic versions and picks the
// single tag naming scheme a repository uses.
//
// This package implements:
//   - Tag parsing that tolerates arbitrary prefixes ("v1.2.0", "web-1.2.0")
//   - Semantic version precedence within one prefix
//   - Prefix scheme resolution with the "" then "v" default preference
//
// Versions with different prefixes are never ordered against each other: a run
// resolves the scheme once with Resolve and compares only inside that partition.
package semtag
