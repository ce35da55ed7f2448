package history

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for history operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps a go-git repository with read-only changelog queries.
type Repository struct {
	repo *git.Repository
}

// Open opens the repository containing path, walking up the directory tree
// to find it. An empty path means the current working directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[history] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[history] repository opened successfully")
	return New(repo), nil
}

// New wraps an already opened repository.
func New(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

// GitDir returns the path of the .git directory, or "" for repositories
// that are not stored on disk.
func (r *Repository) GitDir() string {
	fs, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return ""
	}
	return fs.Filesystem().Root()
}

// RemoteURL returns the first URL configured for the named remote. A missing
// remote is not an error: the URL is empty.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		logDebug("[history] remote %q not configured", name)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	logDebug("[history] remote %q url: %s", name, urls[0])
	return urls[0], nil
}
