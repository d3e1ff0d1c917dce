package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/inappbanner/internal/audio"
	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
	"github.com/jmylchreest/inappbanner/internal/display"
)

const appID = "io.github.jmylchreest.inappbanner"

var showCmd = &cobra.Command{
	Use:   "show [flags] <message>",
	Short: "Show a banner on the desktop",
	Long: `Show a banner at the top of the configured monitor using a Wayland
layer-shell surface. The command exits once the banner has dismissed itself.

Desktop outputs have no safe area of their own. Set [surface] safe_area_top
in the config to describe a cutout; --island only takes effect when it is
at least 51.

Layer-shell margins cannot be negative. When the computed top edge lies
above the output (for example safe_area_top = 59 with --island gives -19.5)
the banner is drawn flush with the top of the output instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	addBannerFlags(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	message := messageFromArgs(args)
	title := bannerOpts.title
	opts := resolveOptions(cmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := adw.NewApplication(appID, gio.ApplicationNonUnique)

	var (
		displayManager *display.Manager
		themeLoader    *display.ThemeLoader
		chime          *audio.Chime
		runErr         error
	)

	app.ConnectActivate(func() {
		themeLoader = display.NewThemeLoader(config.ThemesDir(), logger)
		themeLoader.LoadTheme(cfg.Theme.Name)
		themeLoader.Apply(nil)
		if cfg.Theme.HotReload {
			themeLoader.StartHotReload(ctx)
		}

		chime = audio.NewChime(cfg.Audio, logger)
		if err := chime.Start(); err != nil {
			logger.Warn("failed to load chime", "error", err)
		}

		displayManager = display.NewManager(&app.Application, cfg, logger)
		if err := displayManager.Start(); err != nil {
			runErr = err
			app.Quit()
			return
		}

		presenter := banner.NewPresenter[gtk.Widgetter](displayManager, display.Loop{}, logger)
		presenter.SetAnimationDuration(cfg.Animation.Duration.Duration())
		presenter.SetPresentCallback(func(id string, opts banner.Options) {
			if err := chime.Play(); err != nil {
				logger.Warn("failed to play chime", "banner_id", id, "error", err)
			}
		})
		presenter.SetDismissCallback(func(id string, reason banner.DismissReason) {
			logger.Info("banner dismissed", "banner_id", id, "reason", reason)
			if presenter.Live() == 0 {
				app.Quit()
			}
		})

		presenter.Present(ctx, opts, func() gtk.Widgetter {
			return buildContent(title, message)
		})
		if presenter.Live() == 0 {
			runErr = &display.DisplayError{Message: "no monitor available for the banner"}
			app.Quit()
			return
		}

		// Interrupts close the banner with its exit animation
		go func() {
			<-ctx.Done()
			glib.IdleAdd(func() {
				presenter.DismissAll()
			})
		}()
	})

	app.ConnectShutdown(func() {
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if chime != nil {
			chime.Stop()
		}
		if displayManager != nil {
			displayManager.Stop()
		}
	})

	// GTK must not see cobra's arguments
	if status := app.Run([]string{os.Args[0]}); status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}
	return runErr
}

// buildContent creates the title and message labels of a banner.
func buildContent(title, message string) gtk.Widgetter {
	box := gtk.NewBox(gtk.OrientationVertical, 4)

	if title != "" {
		titleLbl := gtk.NewLabel(title)
		titleLbl.AddCSSClass("inapp-banner-title")
		titleLbl.SetXAlign(0)
		titleLbl.SetEllipsize(pango.EllipsizeEnd)
		box.Append(titleLbl)
	}

	messageLbl := gtk.NewLabel(message)
	messageLbl.AddCSSClass("inapp-banner-message")
	messageLbl.SetXAlign(0)
	messageLbl.SetWrap(true)
	messageLbl.SetLines(3)
	box.Append(messageLbl)

	return box
}
