package display

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/inappbanner/internal/theme"
)

// ThemeLoader applies a theme to a GTK display with hot-reload support.
type ThemeLoader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	current   *theme.Theme
	watcher   *theme.Watcher
}

// NewThemeLoader creates a new theme loader reading user themes from themesDir.
func NewThemeLoader(themesDir string, logger *slog.Logger) *ThemeLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThemeLoader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// LoadTheme resolves a theme by name and loads it into the provider.
func (l *ThemeLoader) LoadTheme(name string) *theme.Theme {
	t := theme.Resolve(name, l.themesDir, l.logger)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = t
	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.IsBundled, "path", t.Path)
	return t
}

// Theme returns the currently loaded theme.
func (l *ThemeLoader) Theme() *theme.Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Apply applies the loaded theme to a display.
// This should be called after the GTK application is initialized.
func (l *ThemeLoader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied theme to display")
}

// StartHotReload watches the current user theme and reapplies it on the
// GTK main loop when it changes.
func (l *ThemeLoader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil || l.current.IsBundled {
		l.logger.Debug("not starting hot-reload for bundled theme")
		return
	}

	if l.watcher != nil {
		l.watcher.Stop()
	}

	l.watcher = theme.NewWatcher(l.current, l.logger)
	l.watcher.SetChangeCallback(func(t *theme.Theme) {
		css := t.CSS
		glib.IdleAdd(func() {
			l.provider.LoadFromString(css)
			l.logger.Info("hot-reloaded theme", "name", t.Name)
		})
	})

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// StopHotReload stops watching the theme for changes.
func (l *ThemeLoader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}
