package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitToHTTP(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"ssh scheme":        {input: "ssh://git@github.com/watawuwu/ccclog.git", want: "https://github.com/watawuwu/ccclog"},
		"scp like":          {input: "git@github.com:watawuwu/ccclog.git", want: "https://github.com/watawuwu/ccclog"},
		"git at with slash": {input: "git@github.com/watawuwu/ccclog.git", want: "https://github.com/watawuwu/ccclog"},
		"https":             {input: "https://github.com/watawuwu/ccclog.git", want: "https://github.com/watawuwu/ccclog"},
		"http":              {input: "http://git.example.com/group/sub/project.git", want: "http://git.example.com/group/sub/project"},
		"https without git": {input: "https://github.com/watawuwu/ccclog", want: "https://github.com/watawuwu/ccclog"},
		"unknown shape":     {input: "/srv/git/project.git", want: "/srv/git/project.git"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GitToHTTP(tt.input))
		})
	}
}

func TestParseRepoURL(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseRepoURL(""))
	assert.Nil(t, ParseRepoURL("   "))

	u := ParseRepoURL(testRemote)
	require.NotNil(t, u)
	assert.Equal(t, "https://github.com/watawuwu/ccclog", u.Base)
}

func TestRepoURL_Links(t *testing.T) {
	t.Parallel()

	u := &RepoURL{Base: "https://github.com/watawuwu/ccclog"}

	tests := map[string]struct {
		got  string
		want string
	}{
		"compare":        {got: u.Compare("0.1.0", "0.2.0"), want: "https://github.com/watawuwu/ccclog/compare/0.1.0...0.2.0"},
		"compare head":   {got: u.Compare("0.1.0", ""), want: "https://github.com/watawuwu/ccclog/compare/0.1.0...HEAD"},
		"compare hashes": {got: u.Compare("4b825dc", "0.1.0"), want: "https://github.com/watawuwu/ccclog/compare/4b825dc...0.1.0"},
		"commit": {
			got:  u.Commit("1d185faf719f12292414c88872e3397fc5dc4e62"),
			want: "https://github.com/watawuwu/ccclog/commit/1d185faf719f12292414c88872e3397fc5dc4e62",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
