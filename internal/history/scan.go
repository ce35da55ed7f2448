package history

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/ccclog/internal/release"
)

// EmptyTreeHash is the object id of the empty tree. It stands in as the
// boundary when the walk reaches the root of history.
var EmptyTreeHash = plumbing.NewHash("4b825dc642cb6eb9a060e54bf8d69288fbee4904")

// ScanOptions selects which part of history Scan walks.
type ScanOptions struct {
	// RevisionSpec is an explicit two-dot range. It overrides All and
	// auto-detection.
	RevisionSpec string
	// All walks from HEAD to the root so every release is included.
	All bool
	// IncludeMerges keeps commits with more than one parent. A merge commit
	// carrying a version of the selected scheme is always kept so that its
	// release boundary survives.
	IncludeMerges bool
	// TagPrefix forces the version scheme instead of auto-detecting it.
	TagPrefix *string
	// ExcludeTags are doublestar globs of tag names to ignore.
	ExcludeTags []string
}

// Scan is the result of a history walk.
type Scan struct {
	// Commits are newest-first.
	Commits []release.Commit
	// Boundary is the reference below the oldest walked commit.
	Boundary release.Ref
	// Selection holds the versions of the resolved scheme.
	Selection *Selection
}

// walkRange describes where a walk starts and where it stops. A nil start
// means the repository has no HEAD. A nil stop walks to the root.
type walkRange struct {
	start *plumbing.Hash
	stop  *plumbing.Hash
	// bases are the merge bases of start and stop where the walk ends.
	bases []plumbing.Hash
}

// Scan resolves the version scheme and walks the selected history.
func (r *Repository) Scan(ctx context.Context, opts ScanOptions) (*Scan, error) {
	sel, err := r.Versions(ctx, opts)
	if err != nil {
		return nil, err
	}

	var wr walkRange
	switch {
	case opts.RevisionSpec != "":
		wr, err = r.parseRange(opts.RevisionSpec)
	case opts.All:
		wr, err = r.headRange()
	default:
		wr, err = r.detectRange(sel)
	}
	if err != nil {
		return nil, err
	}

	boundary := emptyTreeRef()
	if wr.stop != nil {
		boundary, err = r.ref(*wr.stop, sel)
		if err != nil {
			return nil, err
		}
		if wr.start != nil {
			wr.bases, err = r.mergeBases(*wr.start, *wr.stop)
			if err != nil {
				return nil, err
			}
		}
	}

	commits, err := r.walk(ctx, wr, sel, opts.IncludeMerges)
	if err != nil {
		return nil, err
	}

	logDebug("[history] scanned %d commits, boundary %s", len(commits), boundary.Name)
	return &Scan{Commits: commits, Boundary: boundary, Selection: sel}, nil
}

// parseRange accepts only "A..B", "A.." and "..B". A missing side means
// HEAD, as in git.
func (r *Repository) parseRange(spec string) (walkRange, error) {
	from, to, ok := strings.Cut(spec, "..")
	if !ok || strings.HasPrefix(to, ".") || strings.Contains(to, "..") || (from == "" && to == "") {
		return walkRange{}, &UnsupportedRevisionSpecError{Spec: spec}
	}

	start, err := r.resolveOrHead(to)
	if err != nil {
		return walkRange{}, err
	}
	stop, err := r.resolveOrHead(from)
	if err != nil {
		return walkRange{}, err
	}
	wr := walkRange{start: start, stop: stop}

	logDebug("[history] revision spec %s: start=%v stop=%v", spec, wr.start, wr.stop)
	return wr, nil
}

func (r *Repository) resolve(rev string) (*plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, &UnknownRevisionError{Revision: rev, Err: err}
	}
	return h, nil
}

func (r *Repository) resolveOrHead(rev string) (*plumbing.Hash, error) {
	if rev != "" {
		return r.resolve(rev)
	}
	head, err := r.headRange()
	if err != nil {
		return nil, err
	}
	return head.start, nil
}

// mergeBases returns the commits a walk from start ends at. They are stop
// itself when stop is an ancestor of start, and start when start is an
// ancestor of stop, which leaves the range empty. Unrelated histories have
// no merge base and are walked to the root.
func (r *Repository) mergeBases(start, stop plumbing.Hash) ([]plumbing.Hash, error) {
	if start == stop {
		return []plumbing.Hash{stop}, nil
	}
	from, err := r.repo.CommitObject(start)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", start, err)
	}
	to, err := r.repo.CommitObject(stop)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", stop, err)
	}
	bases, err := from.MergeBase(to)
	if err != nil {
		return nil, fmt.Errorf("finding merge base of %s and %s: %w", start, stop, err)
	}

	hashes := make([]plumbing.Hash, 0, len(bases))
	for _, b := range bases {
		hashes = append(hashes, b.Hash)
	}
	if len(hashes) == 0 {
		logDebug("[history] %s and %s share no history, walking to the root", start, stop)
	} else if hashes[0] != stop {
		logDebug("[history] %s is not an ancestor of %s, stopping at %s", stop, start, hashes[0])
	}
	return hashes, nil
}

func (r *Repository) headRange() (walkRange, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		logDebug("[history] repository has no HEAD")
		return walkRange{}, nil
	}
	if err != nil {
		return walkRange{}, fmt.Errorf("getting HEAD reference: %w", err)
	}
	h := head.Hash()
	return walkRange{start: &h}, nil
}

// detectRange walks the newest release: from the latest version down to,
// but excluding, the previous one. With a single version the walk runs to
// the root, and without versions it starts at HEAD.
func (r *Repository) detectRange(sel *Selection) (walkRange, error) {
	latest, previous := sel.LatestRange()
	if latest == nil {
		return r.headRange()
	}

	start := latest.Commit
	wr := walkRange{start: &start}
	if previous != nil {
		stop := previous.Commit
		wr.stop = &stop
	}
	from := "root"
	if previous != nil {
		from = previous.Version.String()
	}
	logDebug("[history] detected range %s..%s", from, latest.Version)
	return wr, nil
}

func (r *Repository) walk(ctx context.Context, wr walkRange, sel *Selection, includeMerges bool) ([]release.Commit, error) {
	if wr.start == nil {
		return nil, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  *wr.start,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", wr.start, err)
	}
	defer iter.Close()

	var commits []release.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if slices.Contains(wr.bases, c.Hash) {
			return storer.ErrStop
		}
		commit := toCommit(c, sel)
		if commit.IsMerge() && !includeMerges {
			if commit.Tag == nil {
				logDebug("[history] skipping merge commit %s", c.Hash)
				return nil
			}
			logDebug("[history] keeping merge commit %s tagged %s", c.Hash, commit.Tag)
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	return commits, nil
}

func (r *Repository) ref(hash plumbing.Hash, sel *Selection) (release.Ref, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return release.Ref{}, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return toCommit(c, sel).Ref(), nil
}

func toCommit(c *object.Commit, sel *Selection) release.Commit {
	author := release.Author{Name: c.Author.Name, Email: c.Author.Email}
	return release.NewCommit(c.Hash.String(), author, c.Committer.When, c.NumParents(), c.Message, sel.TagAt(c.Hash))
}

func emptyTreeRef() release.Ref {
	hash := EmptyTreeHash.String()
	return release.Ref{Name: hash[:release.ShortHashLength], Hash: hash}
}
