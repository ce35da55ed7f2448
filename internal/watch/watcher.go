// Package watch reports changes to the references of a git directory so a
// changelog can be regenerated when commits or tags are added.
package watch

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDebounce is the quiet period after the last ref change before a
	// regeneration runs. Git updates several files per operation.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultPollInterval is the period of the fingerprint check that
	// catches events fsnotify missed.
	DefaultPollInterval = 2 * time.Second
)

var debugLogger func(format string, args ...any)

// SetDebugLogger installs a logger for watch diagnostics.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// RefWatcher watches HEAD, packed-refs and every directory below refs/.
type RefWatcher struct {
	gitDir       string
	debounce     time.Duration
	pollInterval time.Duration
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	closed       bool
}

// Option configures a RefWatcher.
type Option func(*RefWatcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *RefWatcher) {
		w.debounce = d
	}
}

// WithPollInterval sets the fingerprint polling period. Zero disables polling.
func WithPollInterval(d time.Duration) Option {
	return func(w *RefWatcher) {
		w.pollInterval = d
	}
}

// NewRefWatcher creates a watcher for the git directory gitDir.
func NewRefWatcher(gitDir string, opts ...Option) (*RefWatcher, error) {
	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("reading git directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("git directory %s is not a directory", gitDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &RefWatcher{
		gitDir:       gitDir,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		watcher:      watcher,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addDirs(); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// addDirs watches the git directory itself (HEAD, packed-refs) and every
// directory below refs/.
func (w *RefWatcher) addDirs() error {
	if err := w.watcher.Add(w.gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.gitDir, err)
	}
	refs := filepath.Join(w.gitDir, "refs")
	if _, err := os.Stat(refs); err != nil {
		return nil
	}
	return w.addTree(refs)
}

func (w *RefWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// IsRefPath reports whether name, an absolute path inside gitDir, can change
// what a changelog shows. Lock files are ignored; git renames them into
// place, which produces a separate event.
func IsRefPath(gitDir, name string) bool {
	rel, err := filepath.Rel(gitDir, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	if strings.HasSuffix(rel, ".lock") {
		return false
	}
	rel = filepath.ToSlash(rel)
	switch rel {
	case "HEAD", "packed-refs":
		return true
	}
	return strings.HasPrefix(rel, "refs/")
}

// Run calls regenerate once, then again after every debounced ref change,
// until ctx is cancelled. A regenerate error stops the loop.
func (w *RefWatcher) Run(ctx context.Context, regenerate func(context.Context) error) error {
	if err := regenerate(ctx); err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.eventLoop(ctx, changes)
	})
	g.Go(func() error {
		return w.regenerateLoop(ctx, changes, regenerate)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// eventLoop turns fsnotify events and poll fingerprint changes into
// coalesced signals on changes.
func (w *RefWatcher) eventLoop(ctx context.Context, changes chan<- struct{}) error {
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	var tick <-chan time.Time
	if w.pollInterval > 0 {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	last := w.fingerprint()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && IsRefPath(w.gitDir, event.Name) {
					if err := w.addTree(event.Name); err != nil {
						logDebug("[watch] %v", err)
					}
				}
			}
			if IsRefPath(w.gitDir, event.Name) {
				logDebug("[watch] %s %s", event.Op, event.Name)
				last = w.fingerprint()
				notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logDebug("[watch] watcher error: %v", err)
		case <-tick:
			if fp := w.fingerprint(); fp != last {
				logDebug("[watch] poll detected ref change")
				last = fp
				notify()
			}
		}
	}
}

// regenerateLoop waits for the debounce period to pass without new changes
// and then calls regenerate. Reset discards a pending tick, so a burst of
// changes yields one regeneration.
func (w *RefWatcher) regenerateLoop(ctx context.Context, changes <-chan struct{}, regenerate func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := regenerate(ctx); err != nil {
				return err
			}
		}
	}
}

// fingerprint hashes the content of HEAD and packed-refs and the names and
// content of loose refs.
func (w *RefWatcher) fingerprint() uint64 {
	h := fnv.New64a()
	for _, name := range []string{"HEAD", "packed-refs"} {
		if data, err := os.ReadFile(filepath.Join(w.gitDir, name)); err == nil {
			h.Write([]byte(name))
			h.Write(data)
		}
	}
	_ = filepath.WalkDir(filepath.Join(w.gitDir, "refs"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || strings.HasSuffix(path, ".lock") {
			return nil
		}
		if data, err := os.ReadFile(path); err == nil {
			h.Write([]byte(path))
			h.Write(data)
		}
		return nil
	})
	return h.Sum64()
}

// Close stops the watcher and releases resources.
func (w *RefWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// GitDir returns the watched git directory.
func (w *RefWatcher) GitDir() string {
	return w.gitDir
}
