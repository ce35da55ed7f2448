package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// repoFixture is an on-disk repository with deterministic commit times.
type repoFixture struct {
	t     *testing.T
	dir   string
	repo  *git.Repository
	wt    *git.Worktree
	clock time.Time
	n     int
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &repoFixture{
		t:     t,
		dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2020, 4, 29, 7, 0, 0, 0, time.UTC),
	}
}

func (f *repoFixture) commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()

	f.n++
	name := fmt.Sprintf("file%d.txt", f.n)
	require.NoError(f.t, os.WriteFile(filepath.Join(f.dir, name), []byte(message), 0o644))
	_, err := f.wt.Add(name)
	require.NoError(f.t, err)

	f.clock = f.clock.Add(time.Minute)
	sig := &object.Signature{Name: "Test User", Email: "test-user@test.com", When: f.clock}
	h, err := f.wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig, Parents: parents})
	require.NoError(f.t, err)
	return h
}

func (f *repoFixture) tag(name string, h plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, h, nil)
	require.NoError(f.t, err)
}

func (f *repoFixture) remote(url string) {
	f.t.Helper()
	_, err := f.repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{url}})
	require.NoError(f.t, err)
}

func (f *repoFixture) write(name, content string) {
	f.t.Helper()
	require.NoError(f.t, os.WriteFile(filepath.Join(f.dir, name), []byte(content), 0o644))
}

// releasedHistory creates a repository with 0.1.0 and 0.2.0 tags and one
// unreleased commit.
func releasedHistory(t *testing.T) *repoFixture {
	t.Helper()

	f := newRepoFixture(t)
	f.commit("chore: initial commit")
	f.tag("0.1.0", f.commit("feat: first feature"))
	f.commit("fix: first fix")
	f.commit("build: add build script")
	f.tag("0.2.0", f.commit("feat: new fun"))
	f.commit("docs: unreleased notes")
	return f
}

// isolateConfig points the user config at an empty directory.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "ccclog",
		Args: generateArgs,
		RunE: runGenerate,
	}
	registerGenerateFlags(cmd)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidArguments(err)
	})
	return cmd
}
