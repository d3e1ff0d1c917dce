package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a user theme file and reloads it when it changes.
type Watcher struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	theme   *Theme
	watcher *fsnotify.Watcher

	// Callback for changes
	onChangeCallback func(t *Theme)

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a new theme watcher.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger: logger,
		theme:  theme,
	}
}

// SetChangeCallback sets the callback invoked after the theme reloads.
// It runs on the watcher goroutine.
func (w *Watcher) SetChangeCallback(callback func(t *Theme)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching the theme's directory. Bundled themes are not
// watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if w.theme == nil || w.theme.IsBundled {
		w.mu.Unlock()
		w.logger.Debug("not watching bundled theme")
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	// Watch the directory so editors that replace the file are seen
	dir := filepath.Dir(w.theme.Path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		w.mu.Unlock()
		return err
	}

	w.watcher = fsw
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watch(ctx)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("theme watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// watch is the main event loop.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}

// relevant reports whether an event touches the theme or its sidecar.
// Imported partials in the same directory count too.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".css", ".yaml":
		return true
	default:
		return false
	}
}

// reload re-reads the theme and notifies the callback when it changed.
func (w *Watcher) reload() {
	w.mu.RLock()
	t := w.theme
	callback := w.onChangeCallback
	w.mu.RUnlock()

	changed, err := t.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", t.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme file changed, reloading", "path", t.Path)
	if callback != nil {
		callback(t)
	}
}
