package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"a11ybridge/pkg/logging"
)

// StateFunc evaluates the current enabled state.
type StateFunc func(ctx context.Context) bool

// SettingsWatcher watches a settings file and reports transitions of the
// enabled state it implies.
//
// The parent directory is watched rather than the file itself so that
// atomic replacement by editors and sync tools is observed.
type SettingsWatcher struct {
	path             string
	evaluate         StateFunc
	onChange         func(enabled bool)
	debounceInterval time.Duration

	mu      sync.Mutex
	known   bool
	enabled bool
}

// NewSettingsWatcher creates a watcher for path. onChange is called with the
// initial state and then on every transition. A zero debounceInterval
// defaults to 200ms.
func NewSettingsWatcher(path string, evaluate StateFunc, onChange func(enabled bool), debounceInterval time.Duration) *SettingsWatcher {
	if debounceInterval == 0 {
		debounceInterval = 200 * time.Millisecond
	}
	return &SettingsWatcher{
		path:             path,
		evaluate:         evaluate,
		onChange:         onChange,
		debounceInterval: debounceInterval,
	}
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *SettingsWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating settings watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logging.Info(subsystem, "Watching %s for enabled-services changes", w.path)

	w.check(ctx)

	target := filepath.Clean(w.path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug(subsystem, "Settings file event: %s", event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceInterval, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.check(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error(subsystem, err, "Settings watcher error")
		}
	}
}

// check evaluates the state and reports it if it changed.
func (w *SettingsWatcher) check(ctx context.Context) {
	enabled := w.evaluate(ctx)

	w.mu.Lock()
	changed := !w.known || enabled != w.enabled
	w.known = true
	w.enabled = enabled
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange(enabled)
	}
}

// Enabled returns the last evaluated state and whether one exists yet.
func (w *SettingsWatcher) Enabled() (enabled, known bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enabled, w.known
}
