package display

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/inappbanner/internal/banner"
)

// effectClass returns the CSS class carrying a banner's effect.
func effectClass(id string) string {
	return "inapp-banner-" + strings.ToLower(id)
}

// maskClass returns the chrome class for a mask.
func maskClass(m banner.Mask) string {
	return m.String()
}

// MaskCSS renders the chrome's clipping shape for class. The content box
// carries the same radius so its background follows the mask.
func MaskCSS(class string, m banner.Mask) string {
	radius := 0.0
	if m == banner.MaskRounded {
		radius = banner.CornerRadius
	}
	return fmt.Sprintf(".%s,\n.%s > .inapp-banner-content {\n  border-radius: %.2fpx;\n}\n", class, class, radius)
}

// anchorShift is the vertical translation that keeps the scale anchor fixed
// when GTK scales around the widget centre.
func anchorShift(scale, height float64) float64 {
	return (scale - 1) * (0.5 - banner.ScaleAnchor.Y) * height
}

// EffectCSS renders an effect as a stylesheet rule for class. height is the
// chrome height used to place the scale anchor.
func EffectCSS(class string, e banner.Effect, height float64) string {
	dy := e.OffsetY + anchorShift(e.Scale, height)

	var b strings.Builder
	fmt.Fprintf(&b, ".%s {\n", class)
	fmt.Fprintf(&b, "  filter: blur(%.2fpx);\n", e.Blur)
	fmt.Fprintf(&b, "  transform: translate(0px, %.2fpx) scale(%.4f);\n", dy, e.Scale)
	b.WriteString("}\n")
	return b.String()
}

// topMargin converts a placement to a layer-shell top margin. Outputs
// without a configured safe area would otherwise push the banner above the
// screen edge.
func topMargin(p banner.Placement) int {
	return max(int(p.Top), 0)
}
