// Package watcher re-runs a build step when its input files change. It
// backs the --watch flag on gather: edit a manifest, get a fresh closure.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/logger"
)

// RunFunc is invoked once at start and again after every debounced change.
// A returned error is logged, not fatal: a half-saved manifest should not
// kill the watch loop.
type RunFunc func(ctx context.Context) error

// Watcher watches a fixed set of files and debounces change bursts.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over the given files.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", path)
		}
	}
	return &Watcher{watcher: fsw, debounce: debounce}, nil
}

// Run executes fn once, then re-executes it after every debounced change
// until ctx is cancelled. Always returns after closing the underlying
// watcher; the error is ctx.Err() or a watcher failure.
func (w *Watcher) Run(ctx context.Context, fn RunFunc) error {
	defer w.watcher.Close()

	runs := make(chan struct{}, 1)
	log := logger.Named("watch")

	if err := fn(ctx); err != nil {
		log.Errorw("run failed", logger.FieldError, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debugw("input changed", logger.FieldFile, event.Name)
			w.schedule(runs)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", logger.FieldError, err)

		case <-runs:
			if err := fn(ctx); err != nil {
				log.Errorw("run failed", logger.FieldError, err)
			}
		}
	}
}

// schedule arms the debounce timer, collapsing change bursts into one run.
func (w *Watcher) schedule(runs chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case runs <- struct{}{}:
		default:
		}
	})
}
