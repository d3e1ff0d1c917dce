package banner

import "time"

// SurfaceProvider resolves the surface currently receiving user input.
// ok is false when there is no such surface.
type SurfaceProvider[C any] interface {
	ActiveSurface() (surface Surface[C], ok bool)
}

// Surface is a top-level render target banners can be attached to.
type Surface[C any] interface {
	// Geometry returns the current bounds and safe area.
	Geometry() Geometry
	// Mount attaches content in a new view, horizontally centred at the
	// placement, showing the initial effect. id is the banner's identifier.
	Mount(id string, content C, placement Placement, initial Effect) (View, error)
	// Unmount detaches a view previously returned by Mount.
	Unmount(view View)
}

// View is a mounted banner as seen by the animator.
type View interface {
	// Animate interpolates the view towards target over duration and calls
	// done once the animation has logically completed.
	Animate(target Effect, duration time.Duration, done func())
	// OnDragEnd registers the handler for the end of a vertical drag. The
	// translation is negative for upward drags.
	OnDragEnd(fn func(translationY float64))
}

// Loop schedules work on the host's UI loop.
type Loop interface {
	// After runs fn on the UI loop once d has elapsed. It must not block.
	After(d time.Duration, fn func())
}
