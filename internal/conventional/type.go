package conventional

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies the variant of a CommitType. Canonical kinds are declared
// in display order.
type Kind int

const (
	KindFeat Kind = iota
	KindFix
	KindBuild
	KindDoc
	KindChore
	KindCI
	KindStyle
	KindRefactor
	KindPerf
	KindTest
	KindRevert
	KindSecurity
	KindCustom
	KindOthers
)

// CommitType is the category a commit is grouped under. Name is only set for
// KindCustom and holds the token verbatim. CommitType is comparable and can
// be used as a map key.
type CommitType struct {
	Kind Kind
	Name string
}

var (
	Feat     = CommitType{Kind: KindFeat}
	Fix      = CommitType{Kind: KindFix}
	Build    = CommitType{Kind: KindBuild}
	Doc      = CommitType{Kind: KindDoc}
	Chore    = CommitType{Kind: KindChore}
	CI       = CommitType{Kind: KindCI}
	Style    = CommitType{Kind: KindStyle}
	Refactor = CommitType{Kind: KindRefactor}
	Perf     = CommitType{Kind: KindPerf}
	Test     = CommitType{Kind: KindTest}
	Revert   = CommitType{Kind: KindRevert}
	Security = CommitType{Kind: KindSecurity}
	Others   = CommitType{Kind: KindOthers}
)

// canonicalTokens maps each canonical kind to its message token.
var canonicalTokens = map[Kind]string{
	KindFeat:     "feat",
	KindFix:      "fix",
	KindBuild:    "build",
	KindDoc:      "doc",
	KindChore:    "chore",
	KindCI:       "ci",
	KindStyle:    "style",
	KindRefactor: "refactor",
	KindPerf:     "perf",
	KindTest:     "test",
	KindRevert:   "revert",
	KindSecurity: "security",
}

// Custom returns a non-canonical type carrying name verbatim.
func Custom(name string) CommitType {
	return CommitType{Kind: KindCustom, Name: name}
}

// Canonical returns the canonical types in display order.
func Canonical() []CommitType {
	types := make([]CommitType, 0, int(KindCustom))
	for k := KindFeat; k < KindCustom; k++ {
		types = append(types, CommitType{Kind: k})
	}
	return types
}

// classify maps a token found before ':' in a summary line. Canonical names
// match case-insensitively, anything else becomes Custom.
func classify(token string) CommitType {
	lower := strings.ToLower(token)
	for k, name := range canonicalTokens {
		if name == lower {
			return CommitType{Kind: k}
		}
	}
	return Custom(token)
}

// ParseType maps a user-supplied token (config file or flag) to a type.
// It behaves like the message classifier except that "others" selects the
// Others fallback group, so it can be named in ignore lists.
func ParseType(token string) CommitType {
	token = strings.TrimSpace(token)
	if strings.EqualFold(token, "others") {
		return Others
	}
	return classify(token)
}

// ParseTypes maps each token with ParseType, skipping blanks.
func ParseTypes(tokens []string) []CommitType {
	var types []CommitType
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}
		types = append(types, ParseType(token))
	}
	return types
}

// Token returns the lower-case token for canonical types, the verbatim name
// for Custom, and "others" for Others.
func (t CommitType) Token() string {
	switch t.Kind {
	case KindCustom:
		return t.Name
	case KindOthers:
		return "others"
	}
	return canonicalTokens[t.Kind]
}

// String returns the display label: sentence case, except CI.
func (t CommitType) String() string {
	if t.Kind == KindCI {
		return "CI"
	}
	return sentenceCase(t.Token())
}

// MarshalText renders the token so types serialize as plain strings.
func (t CommitType) MarshalText() ([]byte, error) {
	return []byte(t.Token()), nil
}

// UnmarshalText parses a token with ParseType.
func (t *CommitType) UnmarshalText(text []byte) error {
	*t = ParseType(string(text))
	return nil
}

// sentenceCase turns "custom_type", "custom-type" or "customType" into
// "Custom type".
func sentenceCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	words[0] = cases.Title(language.Und).String(words[0])
	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}
