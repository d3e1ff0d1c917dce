package tui

import (
	"math"
	"time"

	"github.com/jmylchreest/inappbanner/internal/banner"
)

// animation is an effect transition driven by frame ticks.
type animation struct {
	from     banner.Effect
	to       banner.Effect
	start    time.Time
	duration time.Duration
	done     func()
}

// view is a mounted terminal banner. It implements banner.View.
type view struct {
	id        string
	host      *Host
	content   Content
	placement banner.Placement
	effect    banner.Effect
	anim      *animation

	onDragEnd func(translationY float64)
}

// Animate implements banner.View.
func (v *view) Animate(target banner.Effect, duration time.Duration, done func()) {
	// A superseded animation stops where it is and counts as completed
	if prev := v.anim; prev != nil {
		v.anim = nil
		prev.done()
	}

	if duration <= 0 {
		v.effect = target
		done()
		return
	}

	v.effect.Interactive = target.Interactive
	v.anim = &animation{
		from:     v.effect,
		to:       target,
		start:    v.host.now(),
		duration: duration,
		done:     done,
	}
	v.host.scheduleFrame()
}

// OnDragEnd implements banner.View.
func (v *view) OnDragEnd(fn func(translationY float64)) {
	v.onDragEnd = fn
}

// dragEnded reports the end of a vertical drag.
func (v *view) dragEnded(translationY float64) {
	if v.onDragEnd != nil {
		v.onDragEnd(translationY)
	}
}

// advance moves the animation to at. It returns whether the animation is
// still running.
func (v *view) advance(at time.Time) bool {
	a := v.anim
	if a == nil {
		return false
	}

	progress := float64(at.Sub(a.start)) / float64(a.duration)
	if progress >= 1 {
		v.anim = nil
		v.effect = a.to
		a.done()
		return false
	}

	v.effect = banner.Lerp(a.from, a.to, easeOutCubic(progress))
	return true
}

// rect is the cell rectangle the banner currently occupies.
func (v *view) rect(cols int, cellWidth, cellHeight float64) cellRect {
	return layoutBanner(v.placement, v.effect, cols, cellWidth, cellHeight)
}

// easeOutCubic decelerates towards the end of the transition.
func easeOutCubic(t float64) float64 {
	t = math.Min(math.Max(t, 0), 1)
	return 1 - math.Pow(1-t, 3)
}
