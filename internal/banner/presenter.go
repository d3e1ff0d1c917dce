package banner

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// PresentCallback is called after a banner has been mounted.
type PresentCallback func(id string, opts Options)

// DismissCallback is called after a banner has removed itself.
type DismissCallback func(id string, reason DismissReason)

// Presenter attaches banners to whichever surface is active at call time.
// Presentation is fire-and-forget: every call creates an independent banner
// that manages and removes itself.
type Presenter[C any] struct {
	provider SurfaceProvider[C]
	loop     Loop
	logger   *slog.Logger
	duration time.Duration

	// Banners that have not removed themselves yet
	live map[string]*Banner

	// Callbacks
	onPresent PresentCallback
	onDismiss DismissCallback
}

// NewPresenter creates a Presenter that resolves surfaces through provider
// and schedules dwell timers on loop.
func NewPresenter[C any](provider SurfaceProvider[C], loop Loop, logger *slog.Logger) *Presenter[C] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter[C]{
		provider: provider,
		loop:     loop,
		logger:   logger,
		duration: DefaultAnimationDuration,
		live:     make(map[string]*Banner),
	}
}

// SetAnimationDuration sets the entrance and exit animation duration.
func (p *Presenter[C]) SetAnimationDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.duration = d
}

// SetPresentCallback sets the callback for mounted banners.
func (p *Presenter[C]) SetPresentCallback(cb PresentCallback) {
	p.onPresent = cb
}

// SetDismissCallback sets the callback for removed banners.
func (p *Presenter[C]) SetDismissCallback(cb DismissCallback) {
	p.onDismiss = cb
}

// Present shows the content built by build in a new banner on the active
// surface. When no surface is active nothing happens and build is not
// called. Cancelling ctx abandons the pending auto-dismissal.
//
// Present must be called from the UI loop.
func (p *Presenter[C]) Present(ctx context.Context, opts Options, build func() C) {
	if ctx == nil {
		ctx = context.Background()
	}

	surface, ok := p.provider.ActiveSurface()
	if !ok || surface == nil {
		p.logger.Debug("no active surface, skipping banner")
		return
	}

	geometry := surface.Geometry()
	placement := Place(geometry, opts)
	id := NewID()

	view, err := surface.Mount(id, build(), placement, HiddenEffect(placement, geometry))
	if err != nil {
		p.logger.Warn("failed to mount banner", "banner_id", id, "error", err)
		return
	}

	b := newBanner(ctx, bannerConfig{
		id:        id,
		opts:      opts,
		geometry:  geometry,
		placement: placement,
		view:      view,
		surface:   surface,
		loop:      p.loop,
		duration:  p.duration,
		logger:    p.logger,
		onDismiss: p.removed,
	})
	p.live[id] = b

	p.logger.Debug("presented banner",
		"banner_id", id,
		"adapted", placement.Adapted,
		"width", placement.Width,
		"offset_y", placement.CenterOffsetY,
		"dwell", opts.Dwell(),
		"swipe_to_close", opts.SwipeToClose,
	)

	if p.onPresent != nil {
		p.onPresent(id, opts)
	}

	b.Appear()
}

// removed forgets a banner once it has detached itself.
func (p *Presenter[C]) removed(id string, reason DismissReason) {
	delete(p.live, id)
	if p.onDismiss != nil {
		p.onDismiss(id, reason)
	}
}

// Live returns the number of banners that have not removed themselves.
func (p *Presenter[C]) Live() int {
	return len(p.live)
}

// DismissAll starts the exit animation of every showing banner with
// ReasonClosed. Banners already dismissing are left alone.
func (p *Presenter[C]) DismissAll() {
	for _, b := range p.live {
		b.Dismiss(ReasonClosed)
	}
}

// NewID returns a new banner identifier.
func NewID() string {
	return ulid.Make().String()
}
