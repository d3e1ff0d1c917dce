package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Palette is a set of colours for one colour scheme.
type Palette struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Border     string `yaml:"border"`
}

// Meta describes a theme for hosts that draw banners without CSS.
type Meta struct {
	DisplayName string  `yaml:"display_name"`
	Description string  `yaml:"description"`
	Border      string  `yaml:"border"` // "rounded", "normal", "thick" or "hidden"
	Light       Palette `yaml:"light"`
	Dark        Palette `yaml:"dark"`
}

// DefaultMeta returns the palette used when a theme has no sidecar.
func DefaultMeta() Meta {
	return Meta{
		DisplayName: "Default",
		Border:      "rounded",
		Light:       Palette{Background: "#fafafa", Foreground: "#1e1e1e", Border: "#d0d0d0"},
		Dark:        Palette{Background: "#1e1e1e", Foreground: "#ffffff", Border: "#3a3a3a"},
	}
}

// Palette returns the palette for the given scheme.
func (m Meta) Palette(dark bool) Palette {
	if dark {
		return m.Dark
	}
	return m.Light
}

// ParseMeta parses a YAML sidecar. Missing fields keep their defaults.
func ParseMeta(data []byte) (Meta, error) {
	meta := DefaultMeta()
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("failed to parse theme metadata: %w", err)
	}
	return meta, nil
}

// LoadMeta reads <name>.yaml from dir, falling back to the bundled sidecar
// and then to DefaultMeta. An empty dir only consults bundled sidecars.
func LoadMeta(name, dir string) (Meta, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".yaml"))
		if err == nil {
			return ParseMeta(data)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return Meta{}, fmt.Errorf("failed to read theme metadata: %w", err)
		}
	}

	if data, found := getEmbeddedMeta(name); found {
		return ParseMeta(data)
	}
	return DefaultMeta(), nil
}
