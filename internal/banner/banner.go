package banner

import (
	"context"
	"log/slog"
	"time"
)

// Banner animates a single mounted banner through its lifecycle. All
// methods must be called from the UI loop.
type Banner struct {
	id        string
	opts      Options
	geometry  Geometry
	placement Placement
	view      View
	surface   interface{ Unmount(View) }
	loop      Loop
	ctx       context.Context
	duration  time.Duration
	logger    *slog.Logger

	// State
	state   State
	effect  Effect
	dwell   *Token
	removed bool

	onDismiss func(id string, reason DismissReason)
}

// bannerConfig carries everything the Presenter hands over to a Banner.
type bannerConfig struct {
	id        string
	opts      Options
	geometry  Geometry
	placement Placement
	view      View
	surface   interface{ Unmount(View) }
	loop      Loop
	duration  time.Duration
	logger    *slog.Logger
	onDismiss func(id string, reason DismissReason)
}

func newBanner(ctx context.Context, cfg bannerConfig) *Banner {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	b := &Banner{
		id:        cfg.id,
		opts:      cfg.opts,
		geometry:  cfg.geometry,
		placement: cfg.placement,
		view:      cfg.view,
		surface:   cfg.surface,
		loop:      cfg.loop,
		ctx:       ctx,
		duration:  cfg.duration,
		logger:    cfg.logger.With("banner_id", cfg.id),
		state:     StateHidden,
		effect:    HiddenEffect(cfg.placement, cfg.geometry),
		onDismiss: cfg.onDismiss,
	}

	b.view.OnDragEnd(b.DragEnded)
	return b
}

// ID returns the banner's identifier.
func (b *Banner) ID() string {
	return b.id
}

// State returns the current visibility state.
func (b *Banner) State() State {
	return b.state
}

// Effect returns the effect the view is showing or animating towards.
func (b *Banner) Effect() Effect {
	return b.effect
}

// Removed reports whether the banner has detached itself from its surface.
func (b *Banner) Removed() bool {
	return b.removed
}

// Appear runs the entrance animation and starts the dwell timer. Only the
// first call on a hidden banner has any effect.
func (b *Banner) Appear() {
	if b.state != StateHidden {
		return
	}

	b.state = StatePresenting
	b.effect = VisibleEffect()
	b.dwell = newToken()

	b.view.Animate(b.effect, b.duration, func() {
		if b.state == StatePresenting {
			b.state = StateVisible
			b.logger.Debug("banner visible")
		}
	})

	// The dwell runs alongside the entrance so the banner stays up for
	// roughly the requested timeout in total.
	token := b.dwell
	b.loop.After(b.opts.Dwell(), func() {
		b.expire(token)
	})

	b.logger.Debug("banner presenting", "dwell", b.opts.Dwell(), "adapted", b.placement.Adapted)
}

// expire is the dwell timer callback.
func (b *Banner) expire(token *Token) {
	if !token.Valid() {
		b.logger.Debug("dwell elapsed after dismissal")
		return
	}
	if b.ctx.Err() != nil {
		b.logger.Debug("dwell abandoned", "error", b.ctx.Err())
		return
	}
	b.Dismiss(ReasonExpired)
}

// DragEnded handles the end of a vertical drag. An upward translation past
// SwipeThreshold dismisses the banner when swiping is enabled.
func (b *Banner) DragEnded(translationY float64) {
	if !b.state.showing() || !b.effect.Interactive {
		return
	}
	if !b.opts.SwipeToClose {
		return
	}
	if -translationY > SwipeThreshold {
		b.Dismiss(ReasonSwiped)
	}
}

// Dismiss runs the exit animation and removes the banner from its surface
// when the animation completes. It does nothing unless the banner is
// presenting or visible.
func (b *Banner) Dismiss(reason DismissReason) {
	if !b.state.showing() {
		return
	}

	b.state = StateDismissing
	b.dwell.Invalidate()
	b.effect = HiddenEffect(b.placement, b.geometry)

	b.logger.Debug("banner dismissing", "reason", reason)

	b.view.Animate(b.effect, b.duration, func() {
		b.remove(reason)
	})
}

// remove detaches the view. It runs once, after the exit animation.
func (b *Banner) remove(reason DismissReason) {
	if b.removed {
		return
	}
	b.removed = true
	b.surface.Unmount(b.view)

	b.logger.Debug("banner removed", "reason", reason)

	if b.onDismiss != nil {
		b.onDismiss(b.id, reason)
	}
}
