package display

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
)

// ErrNoContent is returned when a banner is mounted without content.
var ErrNoContent = errors.New("banner content is nil")

// Manager tracks banner windows and resolves the active monitor.
// It implements banner.SurfaceProvider for GTK widgets.
type Manager struct {
	app     *gtk.Application
	config  *config.Config
	layout  *LayoutManager
	logger  *slog.Logger
	display *gdk.Display

	mu     sync.RWMutex
	popups map[*Popup]struct{}
}

// NewManager creates a new display manager.
func NewManager(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Manager{
		app:    app,
		config: cfg,
		layout: NewLayoutManager(cfg.Surface, logger),
		logger: logger,
		popups: make(map[*Popup]struct{}),
	}
}

// Start initializes the display manager.
func (m *Manager) Start() error {
	m.display = gdk.DisplayGetDefault()
	if m.display == nil {
		return &DisplayError{Message: "no display available"}
	}

	if monitors := m.display.Monitors(); monitors != nil {
		monitors.ConnectItemsChanged(func(position, removed, added uint) {
			m.layout.HandleMonitorChange()
		})
	}

	m.logger.Info("display manager started")
	return nil
}

// Stop closes every banner window.
func (m *Manager) Stop() {
	m.mu.Lock()
	popups := m.popups
	m.popups = make(map[*Popup]struct{})
	m.mu.Unlock()

	for p := range popups {
		p.Close()
	}
	m.logger.Info("display manager stopped")
}

// ActiveSurface implements banner.SurfaceProvider.
func (m *Manager) ActiveSurface() (banner.Surface[gtk.Widgetter], bool) {
	if m.display == nil {
		return nil, false
	}
	monitor := m.layout.GetMonitor()
	if monitor == nil {
		return nil, false
	}
	return &monitorSurface{
		manager:  m,
		monitor:  monitor,
		geometry: m.layout.Geometry(monitor),
	}, true
}

// ActiveCount returns the number of mounted banners.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.popups)
}

// monitorSurface is a monitor seen as a banner surface.
type monitorSurface struct {
	manager  *Manager
	monitor  *gdk.Monitor
	geometry banner.Geometry
}

func (s *monitorSurface) Geometry() banner.Geometry {
	return s.geometry
}

func (s *monitorSurface) Mount(id string, content gtk.Widgetter, placement banner.Placement, initial banner.Effect) (banner.View, error) {
	if content == nil {
		return nil, &DisplayError{Message: "failed to mount banner", Cause: ErrNoContent}
	}

	m := s.manager
	p := newPopup(popupConfig{
		app:         m.app,
		monitor:     s.monitor,
		id:          id,
		content:     content,
		placement:   placement,
		initial:     initial,
		colorScheme: config.ColorScheme(m.config.Theme.ColorScheme),
		logger:      m.logger,
	})

	m.mu.Lock()
	m.popups[p] = struct{}{}
	m.mu.Unlock()

	p.Show()
	return p, nil
}

func (s *monitorSurface) Unmount(view banner.View) {
	p, ok := view.(*Popup)
	if !ok {
		return
	}

	m := s.manager
	m.mu.Lock()
	delete(m.popups, p)
	m.mu.Unlock()

	p.Close()
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
