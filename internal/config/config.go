// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/inappbanner/internal/banner"
)

// appDir is the directory name used under the user's config directory.
const appDir = "inappbanner"

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "500ms", "5s", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Bare integers are milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '500ms', '5s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the inappbanner configuration.
// Loaded from ~/.config/inappbanner/config.toml
type Config struct {
	Banner    BannerConfig    `toml:"banner"`
	Surface   SurfaceConfig   `toml:"surface"`
	Animation AnimationConfig `toml:"animation"`
	Theme     ThemeConfig     `toml:"theme"`
	Audio     AudioConfig     `toml:"audio"`
	TUI       TUIConfig       `toml:"tui"`
}

// BannerConfig holds the default presentation options.
type BannerConfig struct {
	AdaptForDynamicIsland bool     `toml:"adapt_for_dynamic_island"`
	Timeout               Duration `toml:"timeout"` // Clamped to 1s when presenting
	SwipeToClose          bool     `toml:"swipe_to_close"`
}

// SurfaceConfig describes the host surface.
// Desktop outputs have no native safe area, so the insets are configured.
type SurfaceConfig struct {
	Monitor        int     `toml:"monitor"` // 0 = primary, 1+ = specific monitor
	SafeAreaTop    float64 `toml:"safe_area_top"`
	SafeAreaBottom float64 `toml:"safe_area_bottom"`
	SafeAreaLeft   float64 `toml:"safe_area_left"`
	SafeAreaRight  float64 `toml:"safe_area_right"`
}

// AnimationConfig controls the entrance and exit animations.
type AnimationConfig struct {
	Duration Duration `toml:"duration"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
	HotReload   bool   `toml:"hot_reload"`   // Reapply user themes when they change on disk
}

// AudioConfig contains the presentation chime settings.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Sound   string `toml:"sound"`  // WAV, OGG or MP3 path, ~ is expanded
}

// TUIConfig controls the terminal host.
type TUIConfig struct {
	CellWidth  float64 `toml:"cell_width"`  // Surface units per column
	CellHeight float64 `toml:"cell_height"` // Surface units per row
	FrameRate  int     `toml:"frame_rate"`  // Animation frames per second
	Mouse      bool    `toml:"mouse"`       // Enable mouse drag swipes
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Banner: BannerConfig{
			AdaptForDynamicIsland: false,
			Timeout:               Duration(banner.DefaultTimeout),
			SwipeToClose:          true,
		},
		Surface: SurfaceConfig{
			Monitor: 0,
		},
		Animation: AnimationConfig{
			Duration: Duration(banner.DefaultAnimationDuration),
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
			HotReload:   true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		TUI: TUIConfig{
			CellWidth:  8,
			CellHeight: 16,
			FrameRate:  60,
			Mouse:      true,
		},
	}
}

// Dir returns the inappbanner config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appDir)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if path == "" {
		return errors.New("unable to determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Animation.Duration < 0 || c.Animation.Duration.Duration() > 5*time.Second {
		return fmt.Errorf("animation duration must be between 0 and 5s, got %s", c.Animation.Duration.Duration())
	}
	if c.Surface.Monitor < 0 {
		return fmt.Errorf("monitor must be 0 or greater, got %d", c.Surface.Monitor)
	}
	for name, v := range map[string]float64{
		"safe_area_top":    c.Surface.SafeAreaTop,
		"safe_area_bottom": c.Surface.SafeAreaBottom,
		"safe_area_left":   c.Surface.SafeAreaLeft,
		"safe_area_right":  c.Surface.SafeAreaRight,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if c.TUI.CellWidth <= 0 || c.TUI.CellHeight <= 0 {
		return fmt.Errorf("tui cell size must be positive, got %vx%v", c.TUI.CellWidth, c.TUI.CellHeight)
	}
	if c.TUI.FrameRate < 1 || c.TUI.FrameRate > 240 {
		return fmt.Errorf("tui frame_rate must be between 1 and 240, got %d", c.TUI.FrameRate)
	}

	return nil
}

// Options returns the configured default presentation options.
func (c *Config) Options() banner.Options {
	return banner.Options{
		AdaptForDynamicIsland: c.Banner.AdaptForDynamicIsland,
		Timeout:               c.Banner.Timeout.Duration(),
		SwipeToClose:          c.Banner.SwipeToClose,
	}
}

// SafeArea returns the configured safe-area insets.
func (c *Config) SafeArea() banner.Insets {
	return banner.Insets{
		Top:    c.Surface.SafeAreaTop,
		Bottom: c.Surface.SafeAreaBottom,
		Left:   c.Surface.SafeAreaLeft,
		Right:  c.Surface.SafeAreaRight,
	}
}
