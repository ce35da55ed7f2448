package semtag

// Preferred prefixes when tags mix naming schemes, highest priority first.
var defaultPrefixes = []string{"", "v"}

// Resolve selects the versions belonging to one naming scheme.
//
// With an explicit prefix only exact matches are kept; an empty result is not
// an error. Without one, a single scheme is used as is, "" wins over "v" when
// either is present, and anything else fails with AmbiguousVersionSchemeError
// naming every prefix found so the caller can retry with an explicit filter.
func Resolve(vs Versions, prefix *string) (Versions, error) {
	if prefix != nil {
		return vs.Filter(*prefix), nil
	}

	prefixes := vs.Prefixes()
	if len(prefixes) <= 1 {
		return vs, nil
	}

	for _, p := range defaultPrefixes {
		if vs.HasPrefix(p) {
			return vs.Filter(p), nil
		}
	}

	return nil, &AmbiguousVersionSchemeError{Prefixes: prefixes}
}

// SelectedPrefix reports which prefix Resolve would keep, without filtering.
// ok is false when the scheme is ambiguous or there are no versions.
func SelectedPrefix(vs Versions, prefix *string) (selected string, ok bool) {
	if prefix != nil {
		return *prefix, true
	}
	prefixes := vs.Prefixes()
	switch len(prefixes) {
	case 0:
		return "", false
	case 1:
		return prefixes[0], true
	}
	for _, p := range defaultPrefixes {
		if vs.HasPrefix(p) {
			return p, true
		}
	}
	return "", false
}
