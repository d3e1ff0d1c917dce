package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved CSS theme with its palette metadata.
type Theme struct {
	Name      string    // Theme name (without extension)
	Path      string    // Full path to the CSS file (empty when bundled)
	CSS       string    // CSS with imports inlined
	Meta      Meta      // Palette for non-CSS hosts
	ModTime   time.Time // Last modification time of Path
	IsBundled bool      // True if the CSS came from the embedded themes
}

// NewTheme creates a Theme by loading a CSS file.
// CSS @import statements are resolved and inlined, and a sibling
// <name>.yaml is read for the palette when present.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	meta, err := LoadMeta(name, filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		Meta:    meta,
		ModTime: info.ModTime(),
	}, nil
}

// newBundledTheme creates a theme from the embedded files.
func newBundledTheme(name string) (*Theme, bool) {
	css, found := GetEmbeddedTheme(name)
	if !found {
		return nil, false
	}
	meta, err := LoadMeta(name, "")
	if err != nil {
		meta = DefaultMeta()
	}
	return &Theme{
		Name:      name,
		CSS:       ProcessImports(css, "", nil),
		Meta:      meta,
		IsBundled: true,
	}, true
}

// Resolve finds a theme by name.
// Resolution order:
//  1. User themes directory
//  2. Embedded/bundled themes
//  3. The bundled default theme
//
// Users can override a bundled theme by placing a file with the same name
// in their themes directory.
func Resolve(name, themesDir string, logger *slog.Logger) *Theme {
	if logger == nil {
		logger = slog.Default()
	}
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir != "" {
		themePath := filepath.Join(themesDir, name+".css")
		if _, err := os.Stat(themePath); err == nil {
			t, err := NewTheme(name, themePath)
			if err == nil {
				return t
			}
			logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	if t, found := newBundledTheme(name); found {
		return t
	}

	logger.Warn("theme not found, using default", "theme", name)
	t, _ := newBundledTheme(DefaultThemeName)
	return t
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir.
// The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		importedCSS, err := os.ReadFile(fullPath)
		if err != nil {
			baseName := filepath.Base(importPath)
			if strings.HasPrefix(baseName, "_") {
				if embeddedCSS, found := GetEmbeddedPartial(baseName); found {
					return "/* imported (embedded): " + importPath + " */\n" + embeddedCSS
				}
			}
			if embeddedCSS, found := GetEmbeddedTheme(strings.TrimSuffix(baseName, ".css")); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embeddedCSS, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		processed := ProcessImports(string(importedCSS), filepath.Dir(fullPath), seen)
		return "/* imported: " + importPath + " */\n" + processed
	})
}

// Reload reloads the theme from disk.
// Returns true if the CSS changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	if meta, err := LoadMeta(t.Name, filepath.Dir(t.Path)); err == nil {
		t.Meta = meta
	}

	oldCSS := t.CSS
	t.CSS = ProcessImports(string(css), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()

	return oldCSS != t.CSS, nil
}

// Info provides basic theme information for listing.
type Info struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
}

// ListAvailableThemes lists bundled themes followed by user themes in
// themesDir. A user theme overriding a bundled one is listed once, with
// its path.
func ListAvailableThemes(themesDir string) ([]Info, error) {
	index := make(map[string]int)
	var themes []Info

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, Info{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".css" || strings.HasPrefix(name, "_") {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		path := filepath.Join(themesDir, name)
		if i, ok := index[themeName]; ok {
			themes[i].Path = path
			continue
		}
		index[themeName] = len(themes)
		themes = append(themes, Info{Name: themeName, Path: path})
	}

	return themes, nil
}
