package dbus

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorScheme_String(t *testing.T) {
	tests := []struct {
		scheme   ColorScheme
		expected string
	}{
		{ColorSchemeNoPreference, "no-preference"},
		{ColorSchemePreferDark, "prefer-dark"},
		{ColorSchemePreferLight, "prefer-light"},
		{ColorScheme(9), "unknown(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scheme.String())
		})
	}
}

func TestColorScheme_Dark(t *testing.T) {
	assert.True(t, ColorSchemePreferDark.Dark())
	assert.False(t, ColorSchemePreferLight.Dark())
	assert.False(t, ColorSchemeNoPreference.Dark())
}

func TestParseColorScheme(t *testing.T) {
	tests := []struct {
		name     string
		variant  dbus.Variant
		expected ColorScheme
		wantErr  bool
	}{
		{"ReadOne dark", dbus.MakeVariant(uint32(1)), ColorSchemePreferDark, false},
		{"ReadOne light", dbus.MakeVariant(uint32(2)), ColorSchemePreferLight, false},
		{"Read nested", dbus.MakeVariant(dbus.MakeVariant(uint32(1))), ColorSchemePreferDark, false},
		{"no preference", dbus.MakeVariant(uint32(0)), ColorSchemeNoPreference, false},
		{"out of range", dbus.MakeVariant(uint32(3)), ColorSchemeNoPreference, true},
		{"wrong type", dbus.MakeVariant("dark"), ColorSchemeNoPreference, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme, err := parseColorScheme(tt.variant)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnexpectedValue))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, scheme)
		})
	}
}

func TestPortal_NotConnected(t *testing.T) {
	_, err := NewPortal(nil).ColorScheme(context.Background())
	assert.Error(t, err)
}
