package tui

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
)

// Content is what a terminal banner shows.
type Content struct {
	Title   string
	Message string
}

// timerMsg fires a callback scheduled with Host.After.
type timerMsg struct {
	id int
}

// frameMsg advances running animations.
type frameMsg struct {
	at time.Time
}

// Host is the terminal seen as a banner surface. Terminal cells are scaled
// to surface units by the configured cell size.
//
// Host implements banner.SurfaceProvider, banner.Surface and banner.Loop.
// Every method must be called from the Bubble Tea update loop; scheduled
// work is returned as commands by Flush.
type Host struct {
	cellWidth  float64
	cellHeight float64
	safeArea   banner.Insets
	frame      time.Duration
	now        func() time.Time

	cols  int
	rows  int
	sized bool

	views []*view

	// Scheduled callbacks keyed by timer ID
	timers    map[int]func()
	nextTimer int

	ticking bool // a frame tick is queued
	cmds    []tea.Cmd
}

// NewHost creates a terminal host.
func NewHost(cfg config.TUIConfig, safeArea banner.Insets) *Host {
	frameRate := max(cfg.FrameRate, 1)
	return &Host{
		cellWidth:  cfg.CellWidth,
		cellHeight: cfg.CellHeight,
		safeArea:   safeArea,
		frame:      time.Second / time.Duration(frameRate),
		now:        time.Now,
		timers:     make(map[int]func()),
	}
}

// Resize records the terminal size. The host has no surface until the
// first resize.
func (h *Host) Resize(cols, rows int) {
	h.cols = cols
	h.rows = rows
	h.sized = cols > 0 && rows > 0
}

// ActiveSurface implements banner.SurfaceProvider.
func (h *Host) ActiveSurface() (banner.Surface[Content], bool) {
	if !h.sized {
		return nil, false
	}
	return h, true
}

// Geometry implements banner.Surface.
func (h *Host) Geometry() banner.Geometry {
	return banner.Geometry{
		Width:    float64(h.cols) * h.cellWidth,
		Height:   float64(h.rows) * h.cellHeight,
		SafeArea: h.safeArea,
	}
}

// Mount implements banner.Surface.
func (h *Host) Mount(id string, content Content, placement banner.Placement, initial banner.Effect) (banner.View, error) {
	v := &view{
		id:        id,
		host:      h,
		content:   content,
		placement: placement,
		effect:    initial,
	}
	h.views = append(h.views, v)
	return v, nil
}

// Unmount implements banner.Surface.
func (h *Host) Unmount(bv banner.View) {
	v, ok := bv.(*view)
	if !ok {
		return
	}
	h.views = slices.DeleteFunc(h.views, func(other *view) bool {
		return other == v
	})
}

// Mounted returns the number of mounted banners.
func (h *Host) Mounted() int {
	return len(h.views)
}

// After implements banner.Loop.
func (h *Host) After(d time.Duration, fn func()) {
	h.nextTimer++
	id := h.nextTimer
	h.timers[id] = fn
	h.cmds = append(h.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
}

// fire runs a scheduled callback once.
func (h *Host) fire(id int) {
	fn, ok := h.timers[id]
	if !ok {
		return
	}
	delete(h.timers, id)
	fn()
}

// scheduleFrame queues the next animation frame unless one is pending.
func (h *Host) scheduleFrame() {
	if h.ticking {
		return
	}
	h.ticking = true
	h.cmds = append(h.cmds, tea.Tick(h.frame, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	}))
}

// step advances every running animation to at.
func (h *Host) step(at time.Time) {
	h.ticking = false

	// Completions may unmount views
	running := false
	for _, v := range slices.Clone(h.views) {
		if v.advance(at) {
			running = true
		}
	}
	if running {
		h.scheduleFrame()
	}
}

// topmost returns the most recently mounted banner.
func (h *Host) topmost() *view {
	if len(h.views) == 0 {
		return nil
	}
	return h.views[len(h.views)-1]
}

// hit returns the topmost banner drawn on row.
func (h *Host) hit(row int) *view {
	for i := len(h.views) - 1; i >= 0; i-- {
		r := h.views[i].rect(h.cols, h.cellWidth, h.cellHeight)
		if r.contains(row) {
			return h.views[i]
		}
	}
	return nil
}

// Flush returns the commands scheduled since the last flush.
func (h *Host) Flush() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	cmds := h.cmds
	h.cmds = nil
	return tea.Batch(cmds...)
}
