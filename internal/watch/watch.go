// Package watch re-runs a callback when source files under a directory
// tree change. Bursts of file-system events are coalesced by a debounce
// timer and callbacks never overlap.
package watch

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	rerrors "github.com/rune-lang/rune/internal/errors"
)

// DefaultDebounce is how long the tree must be quiet before a callback runs
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc receives the sorted set of paths changed since the last call.
// An error is logged and watching continues.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher observes a directory tree using OS-native notifications.
type Watcher struct {
	root     string
	ext      string
	debounce time.Duration
	log      logrus.FieldLogger
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExtension limits notifications to files with ext; "" watches all
func WithExtension(ext string) Option {
	return func(w *Watcher) { w.ext = ext }
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Watcher) { w.log = log }
}

// New starts watching root and every directory below it. Directories
// created later are added as they appear.
func New(root string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, rerrors.IO("start watcher", err)
	}

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	w := &Watcher{root: root, debounce: DefaultDebounce, log: silent, fsw: fsw}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and its subdirectories, skipping hidden ones
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		w.log.WithField("dir", path).Debug("watching")
		return w.fsw.Add(path)
	})
	if err != nil {
		return rerrors.IO("watch "+dir, err)
	}
	return nil
}

// Close stops watching
func (w *Watcher) Close() error { return w.fsw.Close() }

// relevant reports whether ev should trigger a callback
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	return w.ext == "" || filepath.Ext(ev.Name) == w.ext
}

// Run delivers debounced changes to fn until ctx is done or the watcher
// is closed. It returns nil on either.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	pending := make(map[string]struct{})
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.log.WithError(err).Warn("cannot watch new directory")
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.WithFields(logrus.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("change")
			pending[ev.Name] = struct{}{}
			fire = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = make(map[string]struct{})

			if err := fn(ctx, changed); err != nil {
				w.log.WithError(err).Error("rebuild failed")
			}
		}
	}
}
