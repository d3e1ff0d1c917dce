package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
)

// LayoutManager resolves the monitor banners appear on and its geometry.
type LayoutManager struct {
	config  config.SurfaceConfig
	display *gdk.Display
	logger  *slog.Logger
}

// NewLayoutManager creates a new layout manager.
func NewLayoutManager(cfg config.SurfaceConfig, logger *slog.Logger) *LayoutManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutManager{
		config:  cfg,
		display: gdk.DisplayGetDefault(),
		logger:  logger,
	}
}

// GetMonitor returns the monitor to display banners on based on config.
// Config values:
// - 0: Primary monitor
// - 1+: Specific monitor (1-indexed)
//
// Returns nil when no monitor is available.
func (l *LayoutManager) GetMonitor() *gdk.Monitor {
	if l.display == nil {
		return nil
	}

	monitorNum := l.config.Monitor
	if monitorNum == 0 {
		return getPrimaryMonitor(l.display)
	}

	monitors := l.display.Monitors()
	if monitors == nil {
		l.logger.Warn("no monitors list available")
		return nil
	}

	// Convert to 0-indexed
	index := uint(monitorNum - 1)

	if index >= monitors.NItems() {
		l.logger.Warn("configured monitor not available, using primary",
			"configured", monitorNum,
			"available", monitors.NItems(),
		)
		return getPrimaryMonitor(l.display)
	}

	obj := monitors.Item(index)
	if obj == nil {
		return nil
	}

	return wrapMonitor(obj)
}

// Geometry returns the banner geometry of a monitor.
func (l *LayoutManager) Geometry(monitor *gdk.Monitor) banner.Geometry {
	rect := monitor.Geometry()
	return monitorGeometry(rect.Width(), rect.Height(), l.config)
}

// monitorGeometry combines a monitor size with the configured safe area.
func monitorGeometry(width, height int, cfg config.SurfaceConfig) banner.Geometry {
	return banner.Geometry{
		Width:  float64(width),
		Height: float64(height),
		SafeArea: banner.Insets{
			Top:    cfg.SafeAreaTop,
			Bottom: cfg.SafeAreaBottom,
			Left:   cfg.SafeAreaLeft,
			Right:  cfg.SafeAreaRight,
		},
	}
}

// getPrimaryMonitor returns the primary monitor or first available.
func getPrimaryMonitor(display *gdk.Display) *gdk.Monitor {
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}

	// GTK4 doesn't have a "primary" concept in the same way
	// Return the first monitor as fallback
	obj := monitors.Item(0)
	if obj == nil {
		return nil
	}

	return wrapMonitor(obj)
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// The gdk.Monitor struct embeds a *coreglib.Object, so we can create
	// one by casting the native pointer. This is how gotk4 does it internally.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// HandleMonitorChange should be called when monitors change.
// It updates the display reference and logs the change.
func (l *LayoutManager) HandleMonitorChange() {
	l.display = gdk.DisplayGetDefault()
	if l.display == nil {
		l.logger.Warn("no display available after monitor change")
		return
	}

	monitors := l.display.Monitors()
	if monitors != nil {
		l.logger.Info("monitor configuration changed", "count", monitors.NItems())
	}
}
