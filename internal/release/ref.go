package release

import (
	"time"

	"github.com/ariel-frischer/ccclog/internal/semtag"
)

// DateLayout is the layout used for release dates.
const DateLayout = "2006-01-02"

// Ref names one endpoint of a range: a version tag, or a commit addressed by
// its short hash when no tag applies.
type Ref struct {
	Name    string
	Hash    string
	Time    time.Time
	Version *semtag.Version
}

// Date returns the endpoint time formatted as YYYY-MM-DD in UTC.
func (r Ref) Date() string {
	if r.Time.IsZero() {
		return ""
	}
	return r.Time.UTC().Format(DateLayout)
}

// IsTag reports whether the endpoint is a version tag.
func (r Ref) IsTag() bool {
	return r.Version != nil
}

func (r Ref) String() string {
	return r.Name
}

// Range is either a Release or Unreleased. Consumers switch on the concrete
// type; no other implementations exist.
type Range interface {
	isRange()
}

// Release spans the commits after From up to and including To.
type Release struct {
	From Ref
	To   Ref
}

// Unreleased spans the commits after From up to the current head.
type Unreleased struct {
	From Ref
}

func (Release) isRange()    {}
func (Unreleased) isRange() {}
