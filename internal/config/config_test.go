package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Banner.AdaptForDynamicIsland)
	assert.Equal(t, 5*time.Second, cfg.Banner.Timeout.Duration())
	assert.True(t, cfg.Banner.SwipeToClose)
	assert.Equal(t, 350*time.Millisecond, cfg.Animation.Duration.Duration())
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "system", cfg.Theme.ColorScheme)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.Equal(t, 8.0, cfg.TUI.CellWidth)
	assert.Equal(t, 16.0, cfg.TUI.CellHeight)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[banner]
adapt_for_dynamic_island = true
timeout = "2s"
swipe_to_close = false

[surface]
monitor = 2
safe_area_top = 59
safe_area_bottom = 34

[animation]
duration = "500ms"

[theme]
name = "island"
color_scheme = "dark"
hot_reload = false

[audio]
enabled = true
volume = 40
sound = "~/sounds/pop.wav"

[tui]
cell_width = 10
cell_height = 20
frame_rate = 30
mouse = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Banner.AdaptForDynamicIsland)
	assert.Equal(t, 2*time.Second, cfg.Banner.Timeout.Duration())
	assert.False(t, cfg.Banner.SwipeToClose)
	assert.Equal(t, 2, cfg.Surface.Monitor)
	assert.Equal(t, 59.0, cfg.Surface.SafeAreaTop)
	assert.Equal(t, 34.0, cfg.Surface.SafeAreaBottom)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.Duration.Duration())
	assert.Equal(t, "island", cfg.Theme.Name)
	assert.Equal(t, "dark", cfg.Theme.ColorScheme)
	assert.False(t, cfg.Theme.HotReload)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.Equal(t, "~/sounds/pop.wav", cfg.Audio.Sound)
	assert.Equal(t, 10.0, cfg.TUI.CellWidth)
	assert.Equal(t, 30, cfg.TUI.FrameRate)
	assert.False(t, cfg.TUI.Mouse)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[banner]
timeout = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Stored as configured, clamped only when presenting
	assert.Equal(t, 250*time.Millisecond, cfg.Banner.Timeout.Duration())
	assert.Equal(t, time.Second, cfg.Options().Dwell())

	// Unchanged fields keep their defaults
	assert.True(t, cfg.Banner.SwipeToClose)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, 60, cfg.TUI.FrameRate)
}

func TestLoadConfig_NonPositiveTimeout(t *testing.T) {
	for _, timeout := range []string{`"-2s"`, `"0s"`, `-500`} {
		t.Run(timeout, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte("[banner]\ntimeout = "+timeout+"\n"), 0644))

			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, time.Second, cfg.Options().Dwell())
		})
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[banner]\ntimeout = \"soon\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[theme]\ncolor_scheme = \"sepia\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"slow animation", func(c *Config) { c.Animation.Duration = Duration(10 * time.Second) }},
		{"negative monitor", func(c *Config) { c.Surface.Monitor = -1 }},
		{"negative inset", func(c *Config) { c.Surface.SafeAreaLeft = -4 }},
		{"bad scheme", func(c *Config) { c.Theme.ColorScheme = "blue" }},
		{"loud", func(c *Config) { c.Audio.Volume = 101 }},
		{"zero cell", func(c *Config) { c.TUI.CellHeight = 0 }},
		{"frame rate", func(c *Config) { c.TUI.FrameRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Banner.Timeout = Duration(3 * time.Second)
	cfg.Surface.SafeAreaTop = 59

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_OptionsAndSafeArea(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Banner.AdaptForDynamicIsland = true
	cfg.Surface.SafeAreaTop = 59
	cfg.Surface.SafeAreaRight = 4

	opts := cfg.Options()
	assert.True(t, opts.AdaptForDynamicIsland)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.True(t, opts.SwipeToClose)

	insets := cfg.SafeArea()
	assert.Equal(t, 59.0, insets.Top)
	assert.Equal(t, 4.0, insets.Right)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1500")))
	assert.Equal(t, 1500*time.Millisecond, d.Duration())

	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	out, err := Duration(5 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5s", string(out))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/inappbanner/config.toml", ConfigPath())
	assert.Equal(t, "/custom/config/inappbanner/themes", ThemesDir())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join("inappbanner", "config.toml"))
}
