package semtag

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Version is a tag name split into a literal prefix and a semantic version.
// The zero value is not a valid version; construct one with Parse.
type Version struct {
	prefix string
	ver    *semver.Version
}

// Parse splits s into the shortest prefix whose remainder parses as a strict
// semantic version. Candidate split points are the starts of digit runs not
// preceded by a dot, so "web2-1.0.0" yields prefix "web2-" and "v10.0.0"
// yields prefix "v", while "1.2.3.4" is rejected.
func Parse(s string) (Version, error) {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) || (i > 0 && (isDigit(s[i-1]) || s[i-1] == '.')) {
			continue
		}
		ver, err := semver.StrictNewVersion(s[i:])
		if err != nil {
			continue
		}
		return Version{prefix: s[:i], ver: ver}, nil
	}
	return Version{}, &NotASemanticVersionError{Input: s}
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Prefix returns the literal text preceding the semantic version.
func (v Version) Prefix() string {
	return v.prefix
}

// Semver returns the semantic version part without the prefix.
func (v Version) Semver() string {
	if v.ver == nil {
		return ""
	}
	return v.ver.Original()
}

// String returns the original tag name.
func (v Version) String() string {
	return v.prefix + v.Semver()
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.ver == nil
}

// Compare returns -1, 0 or 1 following semantic version precedence. Build
// metadata is ignored. Ties on precedence fall back to the prefix so that the
// order is total, which only matters for sets that were never resolved.
func (v Version) Compare(o Version) int {
	if c := v.ver.Compare(o.ver); c != 0 {
		return c
	}
	switch {
	case v.prefix < o.prefix:
		return -1
	case v.prefix > o.prefix:
		return 1
	}
	return 0
}

// LessThan reports whether v sorts before o.
func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether v and o name the same prefix and precedence.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// Versions is a set of parsed tags.
type Versions []Version

// ParseAll parses every name and returns the versions that parsed together
// with one error per name that did not. Unparseable tags are not fatal.
func ParseAll(names []string) (Versions, []error) {
	var vs Versions
	var errs []error
	for _, name := range names {
		v, err := Parse(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vs = append(vs, v)
	}
	return vs, errs
}

// Prefixes returns the distinct prefixes in first-seen order.
func (vs Versions) Prefixes() []string {
	seen := make(map[string]bool)
	var prefixes []string
	for _, v := range vs {
		if seen[v.prefix] {
			continue
		}
		seen[v.prefix] = true
		prefixes = append(prefixes, v.prefix)
	}
	return prefixes
}

// HasPrefix reports whether any version uses the given prefix.
func (vs Versions) HasPrefix(prefix string) bool {
	for _, v := range vs {
		if v.prefix == prefix {
			return true
		}
	}
	return false
}

// Filter returns the versions whose prefix equals prefix exactly.
func (vs Versions) Filter(prefix string) Versions {
	var out Versions
	for _, v := range vs {
		if v.prefix == prefix {
			out = append(out, v)
		}
	}
	return out
}

// Sorted returns a copy sorted ascending.
func (vs Versions) Sorted() Versions {
	out := make(Versions, len(vs))
	copy(out, vs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LessThan(out[j])
	})
	return out
}
