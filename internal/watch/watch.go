// Package watch reruns a callback when a schema file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single file. Its parent directory is watched so that
// editors replacing the file by rename are still observed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce interval. Zero or less runs the callback on
// every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher for path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run blocks until ctx is done, calling onChange after each burst of changes
// to the file. Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}

	defer func() {
		_ = fw.Close()
	}()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	w.logger.Info("watching schema", slog.String("path", target))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(ev, target) {
				continue
			}

			w.logger.Debug("schema event", slog.String("op", ev.Op.String()))

			if w.debounce <= 0 {
				w.fire(ctx, onChange)
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C
		case <-fire:
			fire = nil
			w.fire(ctx, onChange)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("file watcher error", slog.String("err", err.Error()))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}

	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) fire(ctx context.Context, onChange func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}

	if err := onChange(ctx); err != nil {
		w.logger.Error("regeneration failed", slog.String("err", err.Error()))
	}
}
