package banner

import (
	"errors"
	"sort"
	"time"
)

// fakeLoop is a manual clock. Timers run in due order when Advance passes
// their deadline.
type fakeLoop struct {
	now    time.Duration
	seq    int
	timers []fakeTimer
}

type fakeTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

func (l *fakeLoop) After(d time.Duration, fn func()) {
	l.seq++
	l.timers = append(l.timers, fakeTimer{at: l.now + d, seq: l.seq, fn: fn})
}

func (l *fakeLoop) Advance(d time.Duration) {
	target := l.now + d
	for {
		sort.SliceStable(l.timers, func(i, j int) bool {
			if l.timers[i].at == l.timers[j].at {
				return l.timers[i].seq < l.timers[j].seq
			}
			return l.timers[i].at < l.timers[j].at
		})
		if len(l.timers) == 0 || l.timers[0].at > target {
			break
		}
		next := l.timers[0]
		l.timers = l.timers[1:]
		l.now = next.at
		next.fn()
	}
	l.now = target
}

func (l *fakeLoop) Pending() int {
	return len(l.timers)
}

// fakeView records animation targets and completes them on the loop.
type fakeView struct {
	loop      *fakeLoop
	id        string
	content   string
	placement Placement
	initial   Effect
	targets   []Effect
	dragEnd   func(float64)
}

func (v *fakeView) Animate(target Effect, duration time.Duration, done func()) {
	v.targets = append(v.targets, target)
	v.loop.After(duration, done)
}

func (v *fakeView) OnDragEnd(fn func(translationY float64)) {
	v.dragEnd = fn
}

func (v *fakeView) Swipe(translationY float64) {
	if v.dragEnd != nil {
		v.dragEnd(translationY)
	}
}

// fakeSurface is an in-memory surface.
type fakeSurface struct {
	loop      *fakeLoop
	geometry  Geometry
	mountErr  error
	mounted   []*fakeView
	unmounted []*fakeView
}

func (s *fakeSurface) Geometry() Geometry {
	return s.geometry
}

func (s *fakeSurface) Mount(id string, content string, placement Placement, initial Effect) (View, error) {
	if s.mountErr != nil {
		return nil, s.mountErr
	}
	v := &fakeView{loop: s.loop, id: id, content: content, placement: placement, initial: initial}
	s.mounted = append(s.mounted, v)
	return v, nil
}

func (s *fakeSurface) Unmount(view View) {
	s.unmounted = append(s.unmounted, view.(*fakeView))
}

func (s *fakeSurface) Attached() int {
	return len(s.mounted) - len(s.unmounted)
}

// fakeProvider returns its surface when set.
type fakeProvider struct {
	surface *fakeSurface
}

func (p *fakeProvider) ActiveSurface() (Surface[string], bool) {
	if p.surface == nil {
		return nil, false
	}
	return p.surface, true
}

var errMountFailed = errors.New("mount failed")

// islandGeometry is a phone-sized surface with a dynamic island cutout.
func islandGeometry() Geometry {
	return Geometry{Width: 393, Height: 852, SafeArea: Insets{Top: 59, Bottom: 34}}
}

// notchGeometry is a phone-sized surface with a plain status bar.
func notchGeometry() Geometry {
	return Geometry{Width: 375, Height: 667, SafeArea: Insets{Top: 20}}
}
