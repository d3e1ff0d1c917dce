package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/inappbanner/internal/config"
)

func newFlagCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addBannerFlags(cmd)
	return cmd
}

func TestResolveOptions(t *testing.T) {
	cfg = config.DefaultConfig()
	cfg.Banner.AdaptForDynamicIsland = true
	cfg.Banner.Timeout = config.Duration(3 * time.Second)
	t.Cleanup(func() { cfg = nil })

	tests := []struct {
		name   string
		args   []string
		island bool
		swipe  bool
		dwell  time.Duration
	}{
		{"config defaults", nil, true, true, 3 * time.Second},
		{"island off", []string{"--island=false"}, false, true, 3 * time.Second},
		{"timeout flag", []string{"--timeout", "8s"}, true, true, 8 * time.Second},
		{"short timeout clamps dwell", []string{"--timeout", "200ms"}, true, true, time.Second},
		{"swipe off", []string{"--swipe=false"}, true, false, 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCmd(t)
			require.NoError(t, cmd.ParseFlags(tt.args))

			opts := resolveOptions(cmd)
			assert.Equal(t, tt.island, opts.AdaptForDynamicIsland)
			assert.Equal(t, tt.swipe, opts.SwipeToClose)
			assert.Equal(t, tt.dwell, opts.Dwell())
		})
	}
}

func TestMessageFromArgs(t *testing.T) {
	assert.Equal(t, "Build finished", messageFromArgs([]string{"Build", "finished"}))
	assert.Equal(t, "done", messageFromArgs([]string{"  done  "}))
	assert.Empty(t, messageFromArgs(nil))
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	setupLogger()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme]\ncolor_scheme = \"sepia\"\n"), 0644))

	globalOpts.configPath = path
	t.Cleanup(func() { globalOpts.configPath = "" })

	_, err := loadConfig(showCmd)
	require.Error(t, err)

	for _, cmd := range []*cobra.Command{configInitCmd, configPathCmd} {
		loaded, err := loadConfig(cmd)
		require.NoError(t, err, cmd.Name())
		assert.Equal(t, config.DefaultConfig(), loaded)
	}
}

func TestConfigInit_RepairsBrokenFile(t *testing.T) {
	setupLogger()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0644))

	globalOpts.configPath = path
	configInitOpts.force = true
	t.Cleanup(func() {
		globalOpts.configPath = ""
		configInitOpts.force = false
	})

	var err error
	cfg, err = loadConfig(configInitCmd)
	require.NoError(t, err)

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	require.NoError(t, runConfigInit(configInitCmd, nil))
	assert.Contains(t, out.String(), path)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)
}
