package display

import (
	"log/slog"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
)

// Popup is a banner window. It implements banner.View.
type Popup struct {
	window   *gtk.Window
	chrome   *gtk.Box
	display  *gdk.Display
	provider *gtk.CSSProvider
	logger   *slog.Logger

	class  string
	mask   string // clipping rule, constant for the banner's lifetime
	height float64

	// Animation state
	current banner.Effect
	anim    *adw.TimedAnimation
	finish  func() // done of the running animation

	// Callbacks
	onDragEnd func(translationY float64)

	closed bool
}

// popupConfig holds what a popup needs at construction.
type popupConfig struct {
	app         *gtk.Application
	monitor     *gdk.Monitor
	id          string
	content     gtk.Widgetter
	placement   banner.Placement
	initial     banner.Effect
	colorScheme config.ColorScheme
	logger      *slog.Logger
}

// newPopup creates a banner window on the configured monitor. The window is
// not shown until Show is called.
func newPopup(cfg popupConfig) *Popup {
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Popup{
		display:  gdk.DisplayGetDefault(),
		provider: gtk.NewCSSProvider(),
		logger:   logger,
		class:    effectClass(cfg.id),
		mask:     MaskCSS(effectClass(cfg.id), cfg.placement.Mask),
		height:   cfg.placement.Height,
		current:  cfg.initial,
	}

	width := int(cfg.placement.Width)
	height := int(cfg.placement.Height)

	p.window = gtk.NewWindow()
	if cfg.app != nil {
		p.window.SetApplication(cfg.app)
	}
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.SetDefaultSize(width, height)
	p.window.SetSizeRequest(width, height)
	p.window.AddCSSClass("inapp-banner-window")

	// Initialize layer-shell
	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(p.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, "inappbanner")
	if cfg.monitor != nil {
		layershell.SetMonitor(p.window, cfg.monitor)
	}

	// Top anchor only, so the compositor centres the window horizontally
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, topMargin(cfg.placement))

	p.chrome = gtk.NewBox(gtk.OrientationVertical, 0)
	p.chrome.AddCSSClass("inapp-banner")
	p.chrome.AddCSSClass(maskClass(cfg.placement.Mask))
	p.chrome.AddCSSClass(p.class)
	p.chrome.SetHExpand(true)
	p.chrome.SetVExpand(true)
	// The chrome is the mask; clip the content to its border radius
	p.chrome.SetOverflow(gtk.OverflowHidden)

	if cfg.content != nil {
		content := gtk.NewBox(gtk.OrientationVertical, 0)
		content.AddCSSClass("inapp-banner-content")
		content.AddCSSClass(colorSchemeClass(cfg.colorScheme))
		content.SetVExpand(true)
		content.Append(cfg.content)
		p.chrome.Append(content)
	}

	p.window.SetChild(p.chrome)

	if p.display != nil {
		gtk.StyleContextAddProviderForDisplay(
			p.display,
			p.provider,
			gtk.STYLE_PROVIDER_PRIORITY_USER,
		)
	}
	p.apply(cfg.initial)

	p.connectSignals()

	return p
}

// connectSignals sets up event handlers.
func (p *Popup) connectSignals() {
	drag := gtk.NewGestureDrag()
	drag.ConnectDragEnd(func(offsetX, offsetY float64) {
		if p.onDragEnd != nil {
			p.onDragEnd(offsetY)
		}
	})
	p.chrome.AddController(drag)
}

// apply renders an effect onto the chrome.
func (p *Popup) apply(e banner.Effect) {
	p.current = e
	p.provider.LoadFromString(p.mask + EffectCSS(p.class, e, p.height))
	p.chrome.SetCanTarget(e.Interactive)
}

// Animate implements banner.View.
func (p *Popup) Animate(target banner.Effect, duration time.Duration, done func()) {
	// A superseded animation stops where it is and counts as completed
	if p.anim != nil {
		anim, finish := p.anim, p.finish
		p.anim, p.finish = nil, nil
		anim.Pause()
		finish()
	}
	if p.closed {
		done()
		return
	}

	from := p.current
	if duration <= 0 {
		p.apply(target)
		done()
		return
	}

	p.chrome.SetCanTarget(target.Interactive)
	anim := adw.NewTimedAnimation(
		p.chrome,
		0, 1,
		uint(duration.Milliseconds()),
		adw.NewCallbackAnimationTarget(func(t float64) {
			p.apply(banner.Lerp(from, target, t))
		}),
	)
	anim.SetEasing(adw.EaseOutCubic)
	anim.ConnectDone(func() {
		if p.anim != anim {
			return
		}
		p.anim, p.finish = nil, nil
		p.apply(target)
		done()
	})
	p.anim, p.finish = anim, done
	anim.Play()
}

// OnDragEnd implements banner.View.
func (p *Popup) OnDragEnd(fn func(translationY float64)) {
	p.onDragEnd = fn
}

// Show presents the window.
func (p *Popup) Show() {
	p.window.Present()
}

// Close closes the window and drops its effect stylesheet.
func (p *Popup) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.display != nil {
		gtk.StyleContextRemoveProviderForDisplay(p.display, p.provider)
	}
	p.window.Close()
}

// colorSchemeClass returns "light" or "dark" based on config or system preference.
func colorSchemeClass(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return detectSystemColorScheme()
	}
}

// detectSystemColorScheme checks libadwaita for system dark mode preference.
func detectSystemColorScheme() string {
	styleManager := adw.StyleManagerGetDefault()
	if styleManager.Dark() {
		return "dark"
	}
	return "light"
}
