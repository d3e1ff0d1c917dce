package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/inappbanner/internal/config"
	"github.com/jmylchreest/inappbanner/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List bundled and user themes",
	Long: `List the bundled themes and the CSS themes in the user themes
directory. A user theme with the same name as a bundled one overrides it.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir := config.ThemesDir()
	themes, err := theme.ListAvailableThemes(dir)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, info := range themes {
		meta, err := theme.LoadMeta(info.Name, dir)
		if err != nil {
			logger.Warn("failed to load theme metadata", "theme", info.Name, "error", err)
			meta = theme.DefaultMeta()
		}

		marker := " "
		if info.Name == cfg.Theme.Name {
			marker = "*"
		}

		fmt.Fprintf(out, "%s %-12s %-10s %s\n", marker, info.Name, themeSource(info), meta.Description)
	}

	fmt.Fprintf(out, "\nUser themes: %s\n", dir)
	return nil
}

// themeSource describes where a theme comes from.
func themeSource(info theme.Info) string {
	if info.Path == "" {
		return "bundled"
	}

	source := "user"
	if info.IsBundled {
		source = "override"
	}
	if stat, err := os.Stat(info.Path); err == nil {
		source += ", edited " + humanize.Time(stat.ModTime())
	}
	return source
}
