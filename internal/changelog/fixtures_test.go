package changelog

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/ccclog/internal/release"
	"github.com/ariel-frischer/ccclog/internal/semtag"
)

const testRemote = "https://github.com/watawuwu/ccclog.git"

// dummyCommit mirrors a commit whose hash starts with n followed by a fixed
// suffix, authored on 2020-04-01.
func dummyCommit(t *testing.T, n int, message, tag string) release.Commit {
	t.Helper()

	var v *semtag.Version
	if tag != "" {
		parsed := semtag.MustParse(tag)
		v = &parsed
	}
	hash := fmt.Sprintf("%dd185faf719f12292414c88872e3397fc5dc4e62", n)
	when := time.Date(2020, 4, 1, 1, 1, n, 0, time.UTC)
	author := release.Author{Name: "Test User", Email: "test-user@test.com"}
	return release.NewCommit(hash, author, when, 1, message, v)
}

func render(t *testing.T, commits []release.Commit, boundary release.Ref, remote string, opts RenderOptions) string {
	t.Helper()

	buckets := release.Partition(commits, boundary, release.Options{})
	doc := Build(buckets, BuildOptions{Repo: ParseRepoURL(remote)})
	out, err := RenderMarkdownString(doc, opts)
	if err != nil {
		t.Fatalf("rendering: %v", err)
	}
	return out
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}
