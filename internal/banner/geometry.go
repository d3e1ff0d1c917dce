package banner

// Layout constants, in surface units.
const (
	// IslandThreshold is the minimum top safe-area inset that indicates a
	// dynamic-island style cutout.
	IslandThreshold = 51.0

	IslandMargin    = 20.0
	StandardMargin  = 30.0
	BannerHeight    = 120.0
	IslandTopOffset = 11.0
	CornerRadius    = 50.0

	// SwipeThreshold is the upward drag distance that must be exceeded to
	// dismiss a banner.
	SwipeThreshold = 50.0

	HiddenBlur  = 10.0
	HiddenScale = 0.01
	// hiddenLift is added to the top inset to push a standard banner fully
	// above the visible area.
	hiddenLift = 130.0
)

// ScaleAnchor is the unit-space point the island scale animation grows from.
var ScaleAnchor = struct{ X, Y float64 }{X: 0.5, Y: 0.01}

// Insets describes the safe area of a surface.
type Insets struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Geometry is a snapshot of a surface taken at presentation time.
type Geometry struct {
	Width    float64
	Height   float64
	SafeArea Insets
}

// Mask is the clipping shape of the banner chrome.
type Mask int

const (
	MaskRectangle Mask = iota
	MaskRounded
)

// String returns the string representation of Mask.
func (m Mask) String() string {
	switch m {
	case MaskRectangle:
		return "rectangle"
	case MaskRounded:
		return "rounded"
	default:
		return "unknown"
	}
}

// Placement is where and how a banner is attached to its surface.
type Placement struct {
	Adapted bool    // Island layout selected
	Width   float64 // Surface width minus the horizontal margin
	Height  float64
	// CenterOffsetY is the banner's vertical centre relative to the
	// surface's vertical centre.
	CenterOffsetY float64
	// Top is the banner's top edge measured from the surface top. It is
	// derived from CenterOffsetY for hosts that position by edge.
	Top          float64
	Mask         Mask
	CornerRadius float64
}

// Place computes the placement of a banner on a surface.
func Place(g Geometry, opts Options) Placement {
	adapted := opts.AdaptForDynamicIsland && g.SafeArea.Top >= IslandThreshold

	p := Placement{
		Adapted: adapted,
		Height:  BannerHeight,
		Mask:    MaskRectangle,
	}

	margin := StandardMargin
	anchor := g.SafeArea.Top
	if adapted {
		margin = IslandMargin
		anchor = IslandTopOffset
		p.Mask = MaskRounded
		p.CornerRadius = CornerRadius
	}

	p.Width = max(g.Width-margin, 0)
	p.CenterOffsetY = -(g.Height-g.SafeArea.Top)/2 + anchor
	p.Top = g.Height/2 + p.CenterOffsetY - p.Height/2

	return p
}

// Effect is the visual target a view is animated towards.
type Effect struct {
	Blur        float64
	Scale       float64
	OffsetY     float64
	Interactive bool
}

// HiddenEffect returns the suppressed look of a banner: blurred, and either
// shrunk into the island or lifted above the top edge.
func HiddenEffect(p Placement, g Geometry) Effect {
	e := Effect{
		Blur:  HiddenBlur,
		Scale: 1,
	}
	if p.Adapted {
		e.Scale = HiddenScale
	} else {
		e.OffsetY = -(g.SafeArea.Top + hiddenLift)
	}
	return e
}

// VisibleEffect returns the resting look of a presented banner.
func VisibleEffect() Effect {
	return Effect{
		Blur:        0,
		Scale:       1,
		OffsetY:     0,
		Interactive: true,
	}
}

// Lerp interpolates between two effects. Interactivity follows the target
// once the animation has started.
func Lerp(from, to Effect, t float64) Effect {
	if t <= 0 {
		t = 0
	}
	if t >= 1 {
		return to
	}
	return Effect{
		Blur:        from.Blur + (to.Blur-from.Blur)*t,
		Scale:       from.Scale + (to.Scale-from.Scale)*t,
		OffsetY:     from.OffsetY + (to.OffsetY-from.OffsetY)*t,
		Interactive: to.Interactive,
	}
}
