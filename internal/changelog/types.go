package changelog

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/ccclog/internal/conventional"
	"github.com/ariel-frischer/ccclog/internal/release"
)

// UnreleasedName is the heading of the release above the newest tag.
const UnreleasedName = "Unreleased"

// Document is a rendered-ready changelog, newest release first.
type Document struct {
	Repository string    `json:"repository,omitempty" yaml:"repository,omitempty"`
	Releases   []Release `json:"releases" yaml:"releases"`
}

// Release is one heading of the changelog. Name is the tag name, or
// UnreleasedName. Previous names the reference the range starts after.
type Release struct {
	Name       string    `json:"name" yaml:"name"`
	Unreleased bool      `json:"unreleased,omitempty" yaml:"unreleased,omitempty"`
	Date       string    `json:"date,omitempty" yaml:"date,omitempty"`
	Previous   string    `json:"previous" yaml:"previous"`
	CompareURL string    `json:"compare_url,omitempty" yaml:"compare_url,omitempty"`
	Sections   []Section `json:"sections" yaml:"sections"`
}

// Section groups the entries of one commit type.
type Section struct {
	Type    conventional.CommitType `json:"type" yaml:"type"`
	Title   string                  `json:"title" yaml:"title"`
	Entries []Entry                 `json:"entries" yaml:"entries"`
}

// Entry is one commit line.
type Entry struct {
	Hash        string         `json:"hash" yaml:"hash"`
	ShortHash   string         `json:"short_hash" yaml:"short_hash"`
	Description string         `json:"description" yaml:"description"`
	Scope       string         `json:"scope,omitempty" yaml:"scope,omitempty"`
	Breaking    bool           `json:"breaking,omitempty" yaml:"breaking,omitempty"`
	Author      release.Author `json:"author" yaml:"author"`
	Time        time.Time      `json:"time" yaml:"time"`
	URL         string         `json:"url,omitempty" yaml:"url,omitempty"`
}

// IsEmpty returns true if the document has no releases.
func (d *Document) IsEmpty() bool {
	return len(d.Releases) == 0
}

// Count returns the total number of entries across all releases.
func (d *Document) Count() int {
	n := 0
	for _, r := range d.Releases {
		n += r.Count()
	}
	return n
}

// Count returns the number of entries in the release.
func (r Release) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}

// BuildOptions controls Build.
type BuildOptions struct {
	// Repo adds compare and commit links. Nil omits them.
	Repo *RepoURL
}

// Build converts buckets into a Document. Buckets left empty by filtering
// are omitted, so no heading is emitted without entries.
func Build(buckets []release.Bucket, opts BuildOptions) *Document {
	doc := &Document{Releases: []Release{}}
	if opts.Repo != nil {
		doc.Repository = opts.Repo.Base
	}

	for _, b := range buckets {
		if b.IsEmpty() {
			continue
		}
		rel := buildRelease(b.Range, opts.Repo)
		for _, g := range b.Groups {
			if len(g.Commits) == 0 {
				continue
			}
			rel.Sections = append(rel.Sections, buildSection(g, opts.Repo))
		}
		doc.Releases = append(doc.Releases, rel)
	}
	return doc
}

func buildRelease(r release.Range, repo *RepoURL) Release {
	switch r := r.(type) {
	case release.Release:
		rel := Release{Name: r.To.Name, Date: r.To.Date(), Previous: r.From.Name}
		if repo != nil {
			rel.CompareURL = repo.Compare(r.From.Name, r.To.Name)
		}
		return rel
	case release.Unreleased:
		rel := Release{Name: UnreleasedName, Unreleased: true, Previous: r.From.Name}
		if repo != nil {
			rel.CompareURL = repo.Compare(r.From.Name, "")
		}
		return rel
	default:
		panic(fmt.Sprintf("changelog: unknown release range %T", r))
	}
}

func buildSection(g release.Group, repo *RepoURL) Section {
	sec := Section{Type: g.Type, Title: g.Type.String()}
	for _, c := range g.Commits {
		e := Entry{
			Hash:        c.Hash,
			ShortHash:   c.ShortHash(),
			Description: c.Description(),
			Scope:       c.Conventional.Scope,
			Breaking:    c.Conventional.Breaking,
			Author:      c.Author,
			Time:        c.Time,
		}
		if repo != nil {
			e.URL = repo.Commit(c.Hash)
		}
		sec.Entries = append(sec.Entries, e)
	}
	return sec
}
