package release

import (
	"time"

	"github.com/ariel-frischer/ccclog/internal/conventional"
	"github.com/ariel-frischer/ccclog/internal/semtag"
)

// ShortHashLength is the number of hex characters shown for a commit.
const ShortHashLength = 7

// UnknownAuthor is displayed when a commit carries no author name.
const UnknownAuthor = "Unknown"

// Author identifies who wrote a commit.
type Author struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// DisplayName returns Name, or UnknownAuthor when it is empty.
func (a Author) DisplayName() string {
	if a.Name == "" {
		return UnknownAuthor
	}
	return a.Name
}

// Commit is one entry of the history walk. Tag is set only when a version
// tag of the resolved scheme points exactly at this commit.
type Commit struct {
	Hash         string
	Author       Author
	Time         time.Time
	ParentCount  int
	Message      string
	Conventional conventional.Commit
	Tag          *semtag.Version
}

// NewCommit builds a Commit and classifies its message.
func NewCommit(hash string, author Author, when time.Time, parents int, message string, tag *semtag.Version) Commit {
	return Commit{
		Hash:         hash,
		Author:       author,
		Time:         when,
		ParentCount:  parents,
		Message:      message,
		Conventional: conventional.Parse(message),
		Tag:          tag,
	}
}

// ShortHash returns the abbreviated hash.
func (c Commit) ShortHash() string {
	return shortHash(c.Hash)
}

// Type returns the conventional commit type.
func (c Commit) Type() conventional.CommitType {
	return c.Conventional.Type
}

// Description is the text shown for the commit: the conventional
// description, or the raw summary for non-conforming messages.
func (c Commit) Description() string {
	return c.Conventional.Description
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return c.ParentCount > 1
}

// Ref returns the tag reference for a tagged commit, otherwise a reference
// named by the short hash.
func (c Commit) Ref() Ref {
	if c.Tag != nil {
		return Ref{Name: c.Tag.String(), Hash: c.Hash, Time: c.Time, Version: c.Tag}
	}
	return Ref{Name: c.ShortHash(), Hash: c.Hash, Time: c.Time}
}

func shortHash(hash string) string {
	if len(hash) <= ShortHashLength {
		return hash
	}
	return hash[:ShortHashLength]
}
