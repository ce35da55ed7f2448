package release

import (
	"cmp"
	"regexp"
	"slices"

	"github.com/ariel-frischer/ccclog/internal/conventional"
)

// Group holds the commits of one type in input order, or reversed when
// Options.Reverse is set.
type Group struct {
	Type    conventional.CommitType
	Commits []Commit
}

// Bucket is one release range with its commits grouped by type.
type Bucket struct {
	Range  Range
	Groups []Group
}

// IsEmpty reports whether no commit survived filtering.
func (b Bucket) IsEmpty() bool {
	return b.Len() == 0
}

// Len returns the number of commits across all groups.
func (b Bucket) Len() int {
	n := 0
	for _, g := range b.Groups {
		n += len(g.Commits)
	}
	return n
}

// Filter drops commits before grouping. Tag boundaries are unaffected.
type Filter struct {
	// IgnoreSummary drops commits whose description matches.
	IgnoreSummary *regexp.Regexp
	// IgnoreTypes drops commits of these types.
	IgnoreTypes []conventional.CommitType
	// ExcludeMerges drops commits with more than one parent.
	ExcludeMerges bool
}

// Keep reports whether c survives the filter.
func (f Filter) Keep(c Commit) bool {
	if f.ExcludeMerges && c.IsMerge() {
		return false
	}
	if f.IgnoreSummary != nil && f.IgnoreSummary.MatchString(c.Description()) {
		return false
	}
	return !slices.Contains(f.IgnoreTypes, c.Type())
}

// Options controls Partition.
type Options struct {
	// Reverse reverses commit order within each group. Bucket order is
	// unaffected.
	Reverse bool
	Filter  Filter
}

// Partition splits newest-first commits into buckets. boundary is the
// oldest reference point considered: the tag before the walked range, or
// the empty tree when history was walked to its root.
//
// The result holds at most one Unreleased bucket, always first, followed by
// Release buckets from newest to oldest. Partition never fails: an empty
// sequence yields one empty bucket bounded by boundary.
func Partition(commits []Commit, boundary Ref, opts Options) []Bucket {
	var buckets []Bucket
	var newest *Ref
	var acc []Commit

	for _, c := range commits {
		if c.Tag == nil {
			acc = append(acc, c)
			continue
		}

		ref := c.Ref()
		switch {
		case newest == nil && len(acc) > 0:
			buckets = append(buckets, newBucket(Unreleased{From: ref}, acc, opts))
		case newest != nil:
			buckets = append(buckets, newBucket(Release{From: ref, To: *newest}, acc, opts))
		}
		newest = &ref
		acc = []Commit{c}
	}

	if newest != nil {
		buckets = append(buckets, newBucket(Release{From: boundary, To: *newest}, acc, opts))
	} else {
		buckets = append(buckets, newBucket(Unreleased{From: boundary}, acc, opts))
	}
	return buckets
}

func newBucket(r Range, commits []Commit, opts Options) Bucket {
	return Bucket{Range: r, Groups: groupByType(commits, opts)}
}

// groupByType groups commits into the display order of their types.
// Custom types rank by first appearance within the bucket.
func groupByType(commits []Commit, opts Options) []Group {
	var order conventional.Order
	index := make(map[conventional.CommitType]int)
	var groups []Group

	for _, c := range commits {
		if !opts.Filter.Keep(c) {
			continue
		}
		t := c.Type()
		order.Observe(t)
		i, ok := index[t]
		if !ok {
			i = len(groups)
			index[t] = i
			groups = append(groups, Group{Type: t})
		}
		groups[i].Commits = append(groups[i].Commits, c)
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return cmp.Compare(order.Rank(a.Type), order.Rank(b.Type))
	})

	if opts.Reverse {
		for _, g := range groups {
			slices.Reverse(g.Commits)
		}
	}
	return groups
}
