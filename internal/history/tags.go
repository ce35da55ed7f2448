package history

import (
	"context"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ariel-frischer/ccclog/internal/semtag"
)

// Tag is a tag reference peeled to the commit it marks.
type Tag struct {
	Name      string
	Commit    plumbing.Hash
	Annotated bool
}

// Tags returns every tag of the repository sorted by name. Annotated tags
// are peeled to their commit; tags pointing at non-commit objects are skipped.
func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag := Tag{Name: ref.Name().Short(), Commit: ref.Hash()}
		if obj, err := r.repo.TagObject(ref.Hash()); err == nil {
			commit, err := obj.Commit()
			if err != nil {
				logDebug("[history] skipping tag %s: %v", tag.Name, err)
				return nil
			}
			tag.Commit = commit.Hash
			tag.Annotated = true
		}
		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	logDebug("[history] found %d tags", len(tags))
	return tags, nil
}

// TaggedVersion is a version tag together with the commit it marks.
type TaggedVersion struct {
	Version semtag.Version
	Commit  plumbing.Hash
}

// VersionSet holds the tags of a repository classified by ParseVersions.
type VersionSet struct {
	// Tagged holds every tag that parsed as a version and was not excluded.
	Tagged []TaggedVersion
	// Invalid lists tag names without a semantic version.
	Invalid []string
	// Excluded lists tag names dropped by an exclude pattern.
	Excluded []string
}

// ValidateExcludePatterns reports the first malformed glob.
func ValidateExcludePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// ParseVersions classifies tags. Tags matching any of the exclude globs
// are set aside before parsing.
func ParseVersions(tags []Tag, exclude []string) (*VersionSet, error) {
	if err := ValidateExcludePatterns(exclude); err != nil {
		return nil, err
	}

	set := &VersionSet{}
	for _, tag := range tags {
		if excluded(tag.Name, exclude) {
			set.Excluded = append(set.Excluded, tag.Name)
			continue
		}
		v, err := semtag.Parse(tag.Name)
		if err != nil {
			logDebug("[history] %v", err)
			set.Invalid = append(set.Invalid, tag.Name)
			continue
		}
		set.Tagged = append(set.Tagged, TaggedVersion{Version: v, Commit: tag.Commit})
	}
	return set, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}
	return false
}

// Versions reads the tags of the repository, drops those matching
// opts.ExcludeTags and resolves the version scheme of opts.TagPrefix.
func (r *Repository) Versions(ctx context.Context, opts ScanOptions) (*Selection, error) {
	tags, err := r.Tags(ctx)
	if err != nil {
		return nil, err
	}
	set, err := ParseVersions(tags, opts.ExcludeTags)
	if err != nil {
		return nil, err
	}
	sel, err := set.Resolve(opts.TagPrefix)
	if err != nil {
		return nil, fmt.Errorf("resolving version scheme: %w", err)
	}
	return sel, nil
}

// Versions returns the parsed versions in tag order.
func (s *VersionSet) Versions() semtag.Versions {
	vs := make(semtag.Versions, 0, len(s.Tagged))
	for _, tv := range s.Tagged {
		vs = append(vs, tv.Version)
	}
	return vs
}

// Resolve applies the prefix policy of semtag.Resolve and returns the
// selected versions.
func (s *VersionSet) Resolve(prefix *string) (*Selection, error) {
	resolved, err := semtag.Resolve(s.Versions(), prefix)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]TaggedVersion, len(s.Tagged))
	for _, tv := range s.Tagged {
		byName[tv.Version.String()] = tv
	}

	sel := &Selection{byCommit: make(map[plumbing.Hash]semtag.Version)}
	if p, ok := semtag.SelectedPrefix(s.Versions(), prefix); ok {
		sel.Prefix = p
	}
	for _, v := range resolved.Sorted() {
		tv := byName[v.String()]
		sel.Versions = append(sel.Versions, tv)
		if cur, ok := sel.byCommit[tv.Commit]; !ok || cur.LessThan(tv.Version) {
			sel.byCommit[tv.Commit] = tv.Version
		}
	}
	logDebug("[history] selected %d versions with prefix %q", len(sel.Versions), sel.Prefix)
	return sel, nil
}

// Selection is the set of versions of the resolved naming scheme.
type Selection struct {
	// Prefix is the selected scheme prefix.
	Prefix string
	// Versions are sorted ascending.
	Versions []TaggedVersion

	byCommit map[plumbing.Hash]semtag.Version
}

// TagAt returns the version marking commit, or nil. When several versions
// mark the same commit the highest wins.
func (s *Selection) TagAt(commit plumbing.Hash) *semtag.Version {
	v, ok := s.byCommit[commit]
	if !ok {
		return nil
	}
	return &v
}

// LatestRange returns the two newest versions. Either may be nil.
func (s *Selection) LatestRange() (latest, previous *TaggedVersion) {
	n := len(s.Versions)
	if n > 0 {
		latest = &s.Versions[n-1]
	}
	if n > 1 {
		previous = &s.Versions[n-2]
	}
	return latest, previous
}
