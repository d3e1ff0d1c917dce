package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// Loop schedules banner timers on the GLib main loop.
type Loop struct{}

// After runs fn on the main loop once d has elapsed.
func (Loop) After(d time.Duration, fn func()) {
	ms := uint(max(d.Milliseconds(), 0))
	glib.TimeoutAdd(ms, func() bool {
		fn()
		return false // one-shot
	})
}
