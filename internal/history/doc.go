// Package history reads commits and version tags from a git repository for
// changelog generation. It uses go-git for every operation, so no git
// binary is required and repositories can live in memory during tests.
//
// The provider never mutates the repository. It resolves the version tag
// scheme, decides which slice of history to walk (explicit two-dot range,
// the newest release, or the whole history) and returns the commits
// newest-first together with the boundary reference below them.
package history
