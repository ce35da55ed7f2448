package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// fixture builds an in-memory repository with deterministic commit times.
type fixture struct {
	t     *testing.T
	fs    billy.Filesystem
	repo  *git.Repository
	wt    *git.Worktree
	clock time.Time
	n     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &fixture{
		t:     t,
		fs:    fs,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2020, 4, 29, 7, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) signature() *object.Signature {
	f.clock = f.clock.Add(time.Minute)
	return &object.Signature{Name: "Test User", Email: "test-user@test.com", When: f.clock}
}

func (f *fixture) commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()

	f.n++
	name := fmt.Sprintf("file%d.txt", f.n)
	require.NoError(f.t, util.WriteFile(f.fs, name, []byte(message), 0o644))
	_, err := f.wt.Add(name)
	require.NoError(f.t, err)

	sig := f.signature()
	h, err := f.wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	require.NoError(f.t, err)
	return h
}

func (f *fixture) tag(name string, h plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, h, nil)
	require.NoError(f.t, err)
}

func (f *fixture) annotatedTag(name string, h plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, h, &git.CreateTagOptions{
		Tagger:  f.signature(),
		Message: "release " + name,
	})
	require.NoError(f.t, err)
}

func (f *fixture) remote(name, url string) {
	f.t.Helper()
	_, err := f.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(f.t, err)
}

func (f *fixture) repository() *Repository {
	return New(f.repo)
}

func summaries(s *Scan) []string {
	out := make([]string, 0, len(s.Commits))
	for _, c := range s.Commits {
		label := c.Description()
		if c.Tag != nil {
			label += "@" + c.Tag.String()
		}
		out = append(out, label)
	}
	return out
}

// linearHistory creates five commits with 0.1.0 on the second and 0.2.0 on
// the fourth.
func linearHistory(t *testing.T) (*fixture, []plumbing.Hash) {
	t.Helper()

	f := newFixture(t)
	hashes := []plumbing.Hash{
		f.commit("chore: add README"),
		f.commit("feat: first feature"),
		f.commit("fix: first fix"),
		f.commit("feat: second feature"),
		f.commit("docs: unreleased notes"),
	}
	f.tag("0.1.0", hashes[1])
	f.annotatedTag("0.2.0", hashes[3])
	return f, hashes
}
