package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sshRemotePattern  = regexp.MustCompile(`^(?:ssh://)?git@(.+?)[/:](.+?)\.git$`)
	httpRemotePattern = regexp.MustCompile(`^(https?://)(.+?)/(.+?)\.git$`)
)

// RepoURL is a browsable repository base URL such as
// https://github.com/owner/repo.
type RepoURL struct {
	Base string
}

// ParseRepoURL converts a git remote URL into a RepoURL. It returns nil
// for an empty remote.
func ParseRepoURL(remote string) *RepoURL {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return nil
	}
	return &RepoURL{Base: GitToHTTP(remote)}
}

// GitToHTTP rewrites ssh and scp-like remotes to https and drops the .git
// suffix. URLs in any other shape are returned unchanged.
func GitToHTTP(url string) string {
	if m := httpRemotePattern.FindStringSubmatch(url); m != nil {
		return m[1] + m[2] + "/" + m[3]
	}
	if m := sshRemotePattern.FindStringSubmatch(url); m != nil {
		return "https://" + m[1] + "/" + m[2]
	}
	return url
}

// Compare returns the URL comparing from with to. An empty to compares
// against HEAD.
func (u *RepoURL) Compare(from, to string) string {
	if to == "" {
		to = "HEAD"
	}
	return fmt.Sprintf("%s/compare/%s...%s", u.Base, from, to)
}

// Commit returns the URL of a single commit.
func (u *RepoURL) Commit(hash string) string {
	return fmt.Sprintf("%s/commit/%s", u.Base, hash)
}
