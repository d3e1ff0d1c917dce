package banner

import "time"

// Default presentation values.
const (
	DefaultTimeout           = 5 * time.Second
	MinTimeout               = time.Second
	DefaultAnimationDuration = 350 * time.Millisecond
)

// Options control a single presentation. They are copied into the banner
// when it is created and never change afterwards.
type Options struct {
	AdaptForDynamicIsland bool          // Use the rounded island layout when the surface has a cutout
	Timeout               time.Duration // Dwell before auto-dismissal, clamped to MinTimeout
	SwipeToClose          bool          // Allow an upward swipe to dismiss early
}

// DefaultOptions returns the options used when the caller has no preference.
func DefaultOptions() Options {
	return Options{
		AdaptForDynamicIsland: false,
		Timeout:               DefaultTimeout,
		SwipeToClose:          true,
	}
}

// Dwell returns the effective dwell duration. Anything below one second,
// including zero and negative values, becomes one second.
func (o Options) Dwell() time.Duration {
	if o.Timeout < MinTimeout {
		return MinTimeout
	}
	return o.Timeout
}
