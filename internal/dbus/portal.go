package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	settingsIface   = "org.freedesktop.portal.Settings"
	appearanceNS    = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
	maxVariantDepth = 4
)

// ErrUnexpectedValue is returned when the portal answers with a value of
// the wrong type.
var ErrUnexpectedValue = errors.New("unexpected portal value")

// ColorScheme is the desktop's colour scheme preference.
type ColorScheme uint32

const (
	ColorSchemeNoPreference ColorScheme = 0
	ColorSchemePreferDark   ColorScheme = 1
	ColorSchemePreferLight  ColorScheme = 2
)

// String returns the string representation of ColorScheme.
func (c ColorScheme) String() string {
	switch c {
	case ColorSchemeNoPreference:
		return "no-preference"
	case ColorSchemePreferDark:
		return "prefer-dark"
	case ColorSchemePreferLight:
		return "prefer-light"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(c))
	}
}

// Dark reports whether the scheme asks for dark colours.
func (c ColorScheme) Dark() bool {
	return c == ColorSchemePreferDark
}

// Portal queries the XDG desktop portal over the session bus.
type Portal struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// NewPortal creates a portal client. Connect must be called before use.
func NewPortal(logger *slog.Logger) *Portal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Portal{logger: logger}
}

// Connect attaches to the shared session bus connection.
func (p *Portal) Connect() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	p.conn = conn
	return nil
}

// ColorScheme reads the desktop colour scheme. It tries ReadOne first and
// falls back to the deprecated Read for portals older than version 2.
func (p *Portal) ColorScheme(ctx context.Context) (ColorScheme, error) {
	if p.conn == nil {
		return ColorSchemeNoPreference, errors.New("portal not connected")
	}

	obj := p.conn.Object(portalDest, portalPath)

	var value dbus.Variant
	err := obj.CallWithContext(ctx, settingsIface+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&value)
	if err != nil {
		p.logger.Debug("ReadOne not available, trying Read", "error", err)
		if err := obj.CallWithContext(ctx, settingsIface+".Read", 0, appearanceNS, colorSchemeKey).Store(&value); err != nil {
			return ColorSchemeNoPreference, fmt.Errorf("failed to read color scheme: %w", err)
		}
	}

	return parseColorScheme(value)
}

// parseColorScheme unwraps the portal reply. Read nests the value in an
// extra variant; ReadOne does not.
func parseColorScheme(v dbus.Variant) (ColorScheme, error) {
	value := v.Value()
	for range maxVariantDepth {
		inner, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = inner.Value()
	}

	n, ok := value.(uint32)
	if !ok {
		return ColorSchemeNoPreference, fmt.Errorf("%w: %s is %T", ErrUnexpectedValue, colorSchemeKey, value)
	}
	if n > uint32(ColorSchemePreferLight) {
		return ColorSchemeNoPreference, fmt.Errorf("%w: %s = %d", ErrUnexpectedValue, colorSchemeKey, n)
	}
	return ColorScheme(n), nil
}

// DetectColorScheme returns the desktop colour scheme, or no preference
// when the portal cannot be reached.
func DetectColorScheme(ctx context.Context, logger *slog.Logger) ColorScheme {
	p := NewPortal(logger)
	if err := p.Connect(); err != nil {
		p.logger.Debug("portal unavailable", "error", err)
		return ColorSchemeNoPreference
	}

	scheme, err := p.ColorScheme(ctx)
	if err != nil {
		p.logger.Debug("failed to read color scheme", "error", err)
		return ColorSchemeNoPreference
	}
	return scheme
}
