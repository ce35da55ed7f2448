// Package release splits a newest-first commit sequence into release
// buckets, each grouped by conventional commit type.
//
// The partition is a single fold over the sequence: untagged commits
// accumulate, and every tagged commit closes the bucket above it and opens
// the next, older one. The tagged commit belongs to the release it closes,
// which is the bucket below it in newest-first order.
package release
