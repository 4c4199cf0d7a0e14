// Package watch waits for changes to the files a resolution run read.
//
// Watching is directory based: the parent directory of every tracked file is
// added to fsnotify, so edits, atomic renames and newly created files that a
// glob may now match are all seen. Bursts of events are collapsed into one
// change by a debounce timer.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raphi011/dotd/internal/log"
)

// DefaultDebounce is the quiet period after the last event before Wait returns.
const DefaultDebounce = 200 * time.Millisecond

// Watcher tracks the directories holding a set of files.
// It is not safe for concurrent use.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	dirs     map[string]struct{}
}

// New creates a Watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fw,
		debounce: debounce,
		dirs:     make(map[string]struct{}),
	}, nil
}

// Track replaces the watched set with the parent directories of files.
// Directories no longer needed are removed.
func (w *Watcher) Track(files []string) error {
	want := make(map[string]struct{}, len(files))
	for _, f := range files {
		want[filepath.Dir(f)] = struct{}{}
	}

	for dir := range w.dirs {
		if _, ok := want[dir]; ok {
			continue
		}
		// the directory may already be gone; fsnotify drops it itself then
		_ = w.fs.Remove(dir)
		delete(w.dirs, dir)
	}

	var errs []error
	for dir := range want {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			errs = append(errs, err)
			continue
		}
		w.dirs[dir] = struct{}{}
	}
	return errors.Join(errs...)
}

// Dirs returns the number of directories currently watched.
func (w *Watcher) Dirs() int {
	return len(w.dirs)
}

// Wait blocks until at least one event arrives followed by a quiet period of
// the debounce duration. It returns ctx.Err() when ctx is cancelled.
func (w *Watcher) Wait(ctx context.Context) error {
	l := log.FromContext(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			l.Debug("fs event", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return err

		case <-fire:
			return nil
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
