// Package watch re-renders context maps when trace files change on disk.
//
// The watcher wraps fsnotify with debouncing so editors that write a file
// in several bursts trigger a single re-render rather than a storm.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/observability"
)

// ReloadFunc is called with the changed trace file path after the
// debounce interval settles.
type ReloadFunc func(path string) error

// Config contains configuration for the trace watcher.
type Config struct {
	// Path is the trace file or directory to watch.
	Path string

	// DebounceInterval is the time to wait after the last change before
	// triggering a reload (default: 250ms).
	DebounceInterval time.Duration

	// Extensions is the list of file extensions to react to.
	Extensions []string
}

// DefaultConfig returns the default watcher configuration for trace files.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:             path,
		DebounceInterval: 250 * time.Millisecond,
		Extensions:       []string{".json"},
	}
}

// Watcher watches trace files and triggers re-renders on change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	config   *Config
	debounce *debouncer

	mu       sync.Mutex
	running  bool
	stopping bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher for the configured path.
func New(config *Config, logger *log.Logger) (*Watcher, error) {
	if config == nil || config.Path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "watch path is required")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 250 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".json"}
	}
	if logger == nil {
		logger = log.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to create file watcher")
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		config:   config,
		debounce: newDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, invoking onReload for each settled change, until the
// context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onReload ReloadFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New(errors.ErrCodeInternal, "watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Path); err != nil {
		return err
	}

	observability.Watch().OnWatchStart(ctx, w.config.Path)
	w.logger.Info("watching for trace changes",
		"path", w.config.Path,
		"debounce", w.config.DebounceInterval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped", "reason", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New(errors.ErrCodeInternal, "watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("trace file changed", "path", event.Name, "op", event.Op.String())
			observability.Watch().OnChange(ctx, event.Name)

			changed := event.Name
			w.debounce.trigger(func() {
				start := time.Now()
				err := onReload(changed)
				observability.Watch().OnReload(ctx, changed, time.Since(start), err)
				if err != nil {
					w.logger.Error("re-render failed", "path", changed, "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New(errors.ErrCodeInternal, "watcher errors channel closed")
			}
			// Keep watching despite transient errors.
			w.logger.Error("watch error", "error", err)
		}
	}
}

// Stop stops the watcher and waits for the watch loop to exit. The
// debouncer is always stopped, even when the loop already exited on its
// own (context cancellation), so no pending reload fires after Stop
// returns.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	signal := w.running && !w.stopping
	if signal {
		w.stopping = true
	}
	w.mu.Unlock()

	if signal {
		close(w.stopCh)
		<-w.doneCh
	}
	w.debounce.stop()
	return w.watcher.Close()
}

// addPath registers a file, or a directory and its subdirectories, with
// the underlying watcher.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot watch %s", path)
	}

	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(filepath.Base(p), ".") && p != path {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "failed to watch directory %s", p)
			}
		}
		return nil
	})
}

// shouldProcess filters out events that must not trigger a reload.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, want := range w.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// debouncer collapses bursts of triggers into one callback.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopCh   chan struct{}
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval, stopCh: make(chan struct{})}
}

// trigger schedules the callback after the interval, replacing any
// pending one.
func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
		}
		d.mu.Lock()
		cb := d.callback
		d.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// stop cancels any pending callback. Safe to call more than once.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.stopped = true
		close(d.stopCh)
	}
	if d.timer != nil {
		d.timer.Stop()
	}
}
