package conventional

import (
	"regexp"
	"strings"
)

// summaryPattern matches "type(scope)!: description" on a summary line.
var summaryPattern = regexp.MustCompile(`^([^(:]+?)(?:\(([^()]*)\))?(!)?: (.+)$`)

// breakingFooters are body line prefixes that flag a breaking change.
var breakingFooters = []string{"BREAKING CHANGE: ", "BREAKING-CHANGE: "}

// Commit is the classification of one commit message.
type Commit struct {
	Type        CommitType `json:"type" yaml:"type"`
	Scope       string     `json:"scope,omitempty" yaml:"scope,omitempty"`
	Breaking    bool       `json:"breaking" yaml:"breaking"`
	Description string     `json:"description" yaml:"description"`
}

// Parse classifies a full commit message. It never fails: a summary that
// does not follow the grammar yields Type Others with the summary verbatim
// as Description.
func Parse(message string) Commit {
	summary, body, _ := strings.Cut(message, "\n")
	summary = strings.TrimRight(summary, "\r")

	c := Commit{
		Type:        Others,
		Description: summary,
		Breaking:    hasBreakingFooter(body),
	}

	m := summaryPattern.FindStringSubmatch(summary)
	if m == nil {
		return c
	}

	c.Type = classify(m[1])
	c.Scope = m[2]
	c.Description = m[4]
	if m[3] != "" {
		c.Breaking = true
	}
	return c
}

func hasBreakingFooter(body string) bool {
	if body == "" {
		return false
	}
	for _, line := range strings.Split(body, "\n") {
		for _, footer := range breakingFooters {
			if strings.HasPrefix(line, footer) {
				return true
			}
		}
	}
	return false
}
