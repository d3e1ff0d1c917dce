package banner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presenterHarness struct {
	loop      *fakeLoop
	surface   *fakeSurface
	provider  *fakeProvider
	presenter *Presenter[string]
	presented []string
	dismissed map[string]DismissReason
}

func newPresenterHarness(g *Geometry) *presenterHarness {
	h := &presenterHarness{
		loop:      &fakeLoop{},
		dismissed: make(map[string]DismissReason),
	}
	h.provider = &fakeProvider{}
	if g != nil {
		h.surface = &fakeSurface{loop: h.loop, geometry: *g}
		h.provider.surface = h.surface
	}

	h.presenter = NewPresenter[string](h.provider, h.loop, nil)
	h.presenter.SetAnimationDuration(testAnimation)
	h.presenter.SetPresentCallback(func(id string, opts Options) {
		h.presented = append(h.presented, id)
	})
	h.presenter.SetDismissCallback(func(id string, reason DismissReason) {
		h.dismissed[id] = reason
	})
	return h
}

func TestPresent_NoActiveSurface(t *testing.T) {
	h := newPresenterHarness(nil)

	built := 0
	assert.NotPanics(t, func() {
		h.presenter.Present(context.Background(), Options{Timeout: 5 * time.Second}, func() string {
			built++
			return "Hello world"
		})
	})

	assert.Zero(t, built)
	assert.Empty(t, h.presented)
	assert.Zero(t, h.loop.Pending())
}

func TestPresent_BuildsContentOnce(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	built := 0
	h.presenter.Present(context.Background(), DefaultOptions(), func() string {
		built++
		return "Hello world"
	})

	assert.Equal(t, 1, built)
	require.Len(t, h.surface.mounted, 1)
	assert.Equal(t, "Hello world", h.surface.mounted[0].content)
	require.Len(t, h.presented, 1)
	assert.Len(t, h.presented[0], 26)
}

func TestPresent_MountsWithBannerID(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	h.presenter.Present(context.Background(), DefaultOptions(), func() string { return "x" })

	require.Len(t, h.surface.mounted, 1)
	require.Len(t, h.presented, 1)
	assert.Equal(t, h.presented[0], h.surface.mounted[0].id)

	h.loop.Advance(DefaultTimeout + testAnimation)
	assert.Contains(t, h.dismissed, h.surface.mounted[0].id)
}

func TestPresent_MountsHiddenAtPlacement(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	h.presenter.Present(context.Background(), DefaultOptions(), func() string { return "x" })

	require.Len(t, h.surface.mounted, 1)
	v := h.surface.mounted[0]
	assert.Equal(t, Place(g, DefaultOptions()), v.placement)
	assert.Equal(t, HiddenEffect(v.placement, g), v.initial)
	assert.Equal(t, []Effect{VisibleEffect()}, v.targets)
}

func TestPresent_MountFailureIsSilent(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)
	h.surface.mountErr = errMountFailed

	assert.NotPanics(t, func() {
		h.presenter.Present(context.Background(), DefaultOptions(), func() string { return "x" })
	})
	assert.Empty(t, h.presented)
	assert.Zero(t, h.loop.Pending())
}

func TestPresent_IndependentBanners(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	h.presenter.Present(context.Background(), Options{Timeout: time.Second, SwipeToClose: true}, func() string { return "first" })
	h.presenter.Present(context.Background(), Options{Timeout: 3 * time.Second, SwipeToClose: true}, func() string { return "second" })

	require.Len(t, h.presented, 2)
	assert.NotEqual(t, h.presented[0], h.presented[1])
	assert.Equal(t, 2, h.surface.Attached())

	h.loop.Advance(time.Second + testAnimation)
	assert.Equal(t, 1, h.surface.Attached())
	assert.Equal(t, ReasonExpired, h.dismissed[h.presented[0]])
	assert.NotContains(t, h.dismissed, h.presented[1])

	h.surface.mounted[1].Swipe(-70)
	h.loop.Advance(testAnimation)
	assert.Equal(t, 0, h.surface.Attached())
	assert.Equal(t, ReasonSwiped, h.dismissed[h.presented[1]])
}

// Island surface, sub-second timeout, left untouched.
func TestPresent_IslandAutoDismiss(t *testing.T) {
	g := islandGeometry()
	h := newPresenterHarness(&g)

	opts := Options{AdaptForDynamicIsland: true, Timeout: 500 * time.Millisecond, SwipeToClose: true}
	h.presenter.Present(context.Background(), opts, func() string { return "content" })

	require.Len(t, h.surface.mounted, 1)
	v := h.surface.mounted[0]
	assert.True(t, v.placement.Adapted)
	assert.Equal(t, MaskRounded, v.placement.Mask)
	assert.Equal(t, g.Width-20, v.placement.Width)
	assert.Equal(t, HiddenScale, v.initial.Scale)

	h.loop.Advance(999 * time.Millisecond)
	assert.Len(t, v.targets, 1)

	h.loop.Advance(time.Millisecond)
	require.Len(t, v.targets, 2)
	assert.Equal(t, HiddenScale, v.targets[1].Scale)

	h.loop.Advance(testAnimation)
	assert.Equal(t, 0, h.surface.Attached())
	assert.Equal(t, ReasonExpired, h.dismissed[h.presented[0]])
}

// Same surface, swiped up 80 units at 0.3s.
func TestPresent_IslandSwipedEarly(t *testing.T) {
	g := islandGeometry()
	h := newPresenterHarness(&g)

	opts := Options{AdaptForDynamicIsland: true, Timeout: 500 * time.Millisecond, SwipeToClose: true}
	h.presenter.Present(context.Background(), opts, func() string { return "content" })
	v := h.surface.mounted[0]

	h.loop.Advance(300 * time.Millisecond)
	v.Swipe(-80)
	require.Len(t, v.targets, 2)

	h.loop.Advance(testAnimation)
	assert.Equal(t, 0, h.surface.Attached())
	assert.Equal(t, ReasonSwiped, h.dismissed[h.presented[0]])

	// The dwell fires at 1s and changes nothing.
	h.loop.Advance(time.Second)
	assert.Len(t, v.targets, 2)
	assert.Len(t, h.surface.unmounted, 1)
	assert.Equal(t, ReasonSwiped, h.dismissed[h.presented[0]])
}

func TestPresent_IslandRequestedOnPlainSurface(t *testing.T) {
	g := notchGeometry()
	adapted := newPresenterHarness(&g)
	plain := newPresenterHarness(&g)

	opts := Options{Timeout: 2 * time.Second, SwipeToClose: true}
	plain.presenter.Present(context.Background(), opts, func() string { return "x" })
	opts.AdaptForDynamicIsland = true
	adapted.presenter.Present(context.Background(), opts, func() string { return "x" })

	a, p := adapted.surface.mounted[0], plain.surface.mounted[0]
	assert.Equal(t, p.placement, a.placement)
	assert.Equal(t, p.initial, a.initial)

	adapted.loop.Advance(3 * time.Second)
	plain.loop.Advance(3 * time.Second)
	assert.Equal(t, p.targets, a.targets)
	assert.Equal(t, plain.surface.Attached(), adapted.surface.Attached())
}

func TestPresent_NilContext(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	//nolint:staticcheck // nil context is tolerated
	h.presenter.Present(nil, DefaultOptions(), func() string { return "x" })
	h.loop.Advance(6 * time.Second)
	assert.Equal(t, 0, h.surface.Attached())
}

func TestSetAnimationDuration_Negative(t *testing.T) {
	h := newPresenterHarness(nil)
	h.presenter.SetAnimationDuration(-time.Second)
	assert.Zero(t, h.presenter.duration)
}

func TestPresenter_DismissAll(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	h.presenter.Present(context.Background(), DefaultOptions(), func() string { return "a" })
	h.presenter.Present(context.Background(), DefaultOptions(), func() string { return "b" })
	require.Equal(t, 2, h.presenter.Live())

	h.presenter.DismissAll()
	assert.Equal(t, 2, h.presenter.Live(), "exit animations still running")

	h.loop.Advance(testAnimation)
	assert.Zero(t, h.presenter.Live())
	require.Len(t, h.dismissed, 2)
	for _, reason := range h.dismissed {
		assert.Equal(t, ReasonClosed, reason)
	}
	assert.Equal(t, 0, h.surface.Attached())

	// Dwell timers firing afterwards do nothing
	h.loop.Advance(10 * time.Second)
	assert.Len(t, h.dismissed, 2)
}

func TestPresenter_LiveTracksSelfRemoval(t *testing.T) {
	g := notchGeometry()
	h := newPresenterHarness(&g)

	h.presenter.Present(context.Background(), Options{Timeout: time.Second}, func() string { return "a" })
	assert.Equal(t, 1, h.presenter.Live())

	h.loop.Advance(time.Second + testAnimation)
	assert.Zero(t, h.presenter.Live())
}
