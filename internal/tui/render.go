package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/theme"
)

// minBannerCells is the smallest box that can carry a border and text.
const minBannerCells = 3

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

func (r cellRect) contains(row int) bool {
	return r.Width > 0 && row >= r.Top && row < r.Top+r.Height
}

// layoutBanner converts a placement and effect to terminal cells. Scaling
// keeps the top edge in place, matching the scale anchor. A negative top
// edge is clamped so banners on surfaces without a safe area stay on
// screen when visible.
func layoutBanner(p banner.Placement, e banner.Effect, cols int, cellWidth, cellHeight float64) cellRect {
	width := int(p.Width * e.Scale / cellWidth)
	height := int(math.Round(p.Height * e.Scale / cellHeight))
	top := int(math.Round((math.Max(p.Top, 0) + e.OffsetY) / cellHeight))

	width = min(width, cols)
	return cellRect{
		Top:    top,
		Left:   (cols - width) / 2,
		Width:  width,
		Height: height,
	}
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Palette theme.Palette
	Border  string
	Title   lipgloss.Style
	Message lipgloss.Style
	Status  lipgloss.Style
}

// NewStyles creates styles from theme metadata.
func NewStyles(meta theme.Meta, dark bool) Styles {
	palette := meta.Palette(dark)
	return Styles{
		Palette: palette,
		Border:  meta.Border,
		Title:   lipgloss.NewStyle().Bold(true),
		Message: lipgloss.NewStyle(),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// borderFor returns the border of a mask. Rounded masks always draw
// rounded corners; rectangles use the theme's border.
func borderFor(mask banner.Mask, name string) lipgloss.Border {
	if mask == banner.MaskRounded {
		return lipgloss.RoundedBorder()
	}
	switch name {
	case "thick":
		return lipgloss.ThickBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// renderBanner draws a banner into r. It returns nil when the banner is too
// small to draw.
func renderBanner(c Content, r cellRect, mask banner.Mask, e banner.Effect, st Styles) []string {
	if r.Width < minBannerCells || r.Height < minBannerCells {
		return nil
	}

	style := lipgloss.NewStyle().
		Border(borderFor(mask, st.Border)).
		BorderForeground(lipgloss.Color(st.Palette.Border)).
		Background(lipgloss.Color(st.Palette.Background)).
		Foreground(lipgloss.Color(st.Palette.Foreground)).
		Padding(0, 1).
		Width(r.Width - 2).
		Height(r.Height - 2).
		MaxWidth(r.Width).
		MaxHeight(r.Height)
	if e.Blur >= banner.HiddenBlur/2 {
		style = style.Faint(true)
	}

	var body []string
	if c.Title != "" {
		body = append(body, st.Title.Render(c.Title))
	}
	if c.Message != "" {
		body = append(body, st.Message.Render(c.Message))
	}

	return strings.Split(style.Render(strings.Join(body, "\n")), "\n")
}

// compose draws banners over a blank screen of cols by rows. Each banner
// line replaces the whole terminal row. The footer occupies the last rows.
func compose(cols, rows int, views []*view, cellWidth, cellHeight float64, st Styles, footer []string) string {
	if rows <= 0 {
		return ""
	}

	lines := make([]string, rows)
	bodyRows := max(rows-len(footer), 0)

	for _, v := range views {
		r := v.rect(cols, cellWidth, cellHeight)
		for i, line := range renderBanner(v.content, r, v.placement.Mask, v.effect, st) {
			row := r.Top + i
			if row < 0 || row >= bodyRows {
				continue
			}
			lines[row] = lipgloss.PlaceHorizontal(cols, lipgloss.Center, line)
		}
	}

	for i, line := range footer {
		row := bodyRows + i
		if row < rows {
			lines[row] = line
		}
	}

	return strings.Join(lines, "\n")
}

// splitLines splits rendered output into lines, dropping a trailing empty
// line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
