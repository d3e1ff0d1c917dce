package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/inappbanner/internal/audio"
	"github.com/jmylchreest/inappbanner/internal/config"
	"github.com/jmylchreest/inappbanner/internal/dbus"
	"github.com/jmylchreest/inappbanner/internal/theme"
	"github.com/jmylchreest/inappbanner/internal/tui"
)

// ErrNotTerminal is returned when preview runs without a terminal.
var ErrNotTerminal = errors.New("preview needs an interactive terminal")

var previewOpts struct {
	stay bool
}

var previewCmd = &cobra.Command{
	Use:   "preview [flags] <message>",
	Short: "Preview a banner in the terminal",
	Long: `Preview a banner in the terminal. Each cell counts as cell_width by
cell_height surface units (see [tui] in the config), and [surface] provides
the safe area.

Key bindings:
  ↑/k         Swipe the newest banner up
  x           Close all banners
  n           Show another banner
  ?           Toggle help
  q           Quit

With mouse support enabled, dragging a banner upward swipes it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addBannerFlags(previewCmd)

	previewCmd.Flags().BoolVar(&previewOpts.stay, "stay", false,
		"Keep running after the last banner is dismissed")
}

func runPreview(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	th := theme.Resolve(cfg.Theme.Name, config.ThemesDir(), logger)

	chime := audio.NewChime(cfg.Audio, logger)
	if err := chime.Start(); err != nil {
		logger.Warn("failed to load chime", "error", err)
	}
	defer chime.Stop()

	err := tui.Run(ctx, tui.RunOptions{
		Config:  cfg,
		Options: resolveOptions(cmd),
		Content: tui.Content{
			Title:   bannerOpts.title,
			Message: messageFromArgs(args),
		},
		Meta:   th.Meta,
		Dark:   detectDark(ctx, config.ColorScheme(cfg.Theme.ColorScheme)),
		Logger: logger,
		OnPresent: func(id string) {
			if err := chime.Play(); err != nil {
				logger.Warn("failed to play chime", "banner_id", id, "error", err)
			}
		},
		ExitOnDismiss: !previewOpts.stay,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// detectDark resolves the colour scheme for the terminal host. An explicit
// config wins, then the desktop portal, then the terminal background.
func detectDark(ctx context.Context, scheme config.ColorScheme) bool {
	switch scheme {
	case config.ColorSchemeDark:
		return true
	case config.ColorSchemeLight:
		return false
	}

	portalCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	switch dbus.DetectColorScheme(portalCtx, logger) {
	case dbus.ColorSchemePreferDark:
		return true
	case dbus.ColorSchemePreferLight:
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}
