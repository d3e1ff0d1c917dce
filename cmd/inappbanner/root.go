// Package main provides the CLI entrypoint for inappbanner.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// bannerOpts holds the presentation flags shared by show and preview.
var bannerOpts struct {
	island  bool
	timeout time.Duration
	swipe   bool
	title   string
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "inappbanner",
	Short: "Auto-dismissing notification banners",
	Long: `inappbanner shows a short-lived banner at the top of the screen.

Banners slide in (or grow out of a dynamic-island style cutout), stay for
the configured timeout and slide away again. Swiping a banner upward
dismisses it early.

Use "show" for a desktop banner on Wayland and "preview" to try the same
presentation in a terminal.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = loadConfig(cmd)
		return err
	},
}

func main() {
	Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/inappbanner/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// loadConfig loads the config file. Commands that repair or locate the
// file run with the defaults when it is broken.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loaded, err := config.LoadConfig(globalOpts.configPath)
	if err == nil {
		return loaded, nil
	}
	if cmd == configInitCmd || cmd == configPathCmd {
		logger.Warn("ignoring unusable config file", "error", err)
		return config.DefaultConfig(), nil
	}
	return nil, fmt.Errorf("failed to load config: %w", err)
}

// addBannerFlags registers the presentation flags on a command.
func addBannerFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&bannerOpts.island, "island", false,
		"Adapt the banner to a dynamic-island style cutout (needs safe_area_top >= 51)")
	cmd.Flags().DurationVar(&bannerOpts.timeout, "timeout", banner.DefaultTimeout,
		"How long the banner stays up (minimum 1s)")
	cmd.Flags().BoolVar(&bannerOpts.swipe, "swipe", true,
		"Allow swiping the banner up to dismiss it")
	cmd.Flags().StringVar(&bannerOpts.title, "title", "",
		"Bold title shown above the message")
}

// resolveOptions starts from the configured defaults and applies the flags
// the user set explicitly.
func resolveOptions(cmd *cobra.Command) banner.Options {
	opts := cfg.Options()

	flags := cmd.Flags()
	if flags.Changed("island") {
		opts.AdaptForDynamicIsland = bannerOpts.island
	}
	if flags.Changed("timeout") {
		opts.Timeout = bannerOpts.timeout
	}
	if flags.Changed("swipe") {
		opts.SwipeToClose = bannerOpts.swipe
	}
	return opts
}

// messageFromArgs joins the positional arguments into the banner message.
func messageFromArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
