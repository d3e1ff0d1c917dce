// Package tui previews banners in the terminal with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/inappbanner/internal/banner"
	"github.com/jmylchreest/inappbanner/internal/config"
	"github.com/jmylchreest/inappbanner/internal/theme"
)

// event is the last banner lifecycle change shown in the status line.
type event struct {
	id   string
	what string
	at   time.Time
}

// Model is the preview TUI model.
type Model struct {
	// Configuration
	cfg     *config.Config
	opts    banner.Options
	content Content
	ctx     context.Context

	host      *Host
	presenter *banner.Presenter[Content]

	// Components
	help   help.Model
	keys   KeyMap
	styles Styles

	// State
	width     int
	height    int
	ready     bool
	presented int
	last      *event
	quitting  bool

	// Drag tracking
	dragView  *view
	dragStart int

	exitOnDismiss bool
}

// New creates a new preview model.
func New(ctx context.Context, opts RunOptions) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	host := NewHost(cfg.TUI, cfg.SafeArea())
	presenter := banner.NewPresenter[Content](host, host, opts.Logger)
	presenter.SetAnimationDuration(cfg.Animation.Duration.Duration())

	m := Model{
		cfg:           cfg,
		opts:          opts.Options,
		content:       opts.Content,
		ctx:           ctx,
		host:          host,
		presenter:     presenter,
		help:          help.New(),
		keys:          DefaultKeyMap(),
		styles:        NewStyles(opts.Meta, opts.Dark),
		exitOnDismiss: opts.ExitOnDismiss,
	}

	// The model is copied on every update, so callbacks record into the
	// shared event instead of the receiver.
	last := &event{}
	m.last = last
	onPresent := opts.OnPresent
	presenter.SetPresentCallback(func(id string, _ banner.Options) {
		*last = event{id: id, what: "presented", at: time.Now()}
		if onPresent != nil {
			onPresent(id)
		}
	})
	presenter.SetDismissCallback(func(id string, reason banner.DismissReason) {
		*last = event{id: id, what: reason.String(), at: time.Now()}
	})

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.host.Resize(msg.Width, msg.Height)
		if !m.ready {
			m.ready = true
			m.present()
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Swipe):
			if v := m.host.topmost(); v != nil {
				// One cell past the threshold
				v.dragEnded(-(banner.SwipeThreshold + m.cfg.TUI.CellHeight))
			}
		case key.Matches(msg, m.keys.Close):
			m.presenter.DismissAll()
		case key.Matches(msg, m.keys.New):
			m.present()
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case timerMsg:
		m.host.fire(msg.id)

	case frameMsg:
		m.host.step(msg.at)
	}

	cmd := m.host.Flush()
	if m.exitOnDismiss && m.presented > 0 && m.host.Mounted() == 0 {
		m.quitting = true
		return m, tea.Batch(cmd, tea.Quit)
	}
	return m, cmd
}

// present shows the configured content in a new banner.
func (m *Model) present() {
	before := m.host.Mounted()
	content := m.content
	m.presenter.Present(m.ctx, m.opts, func() Content {
		return content
	})
	if m.host.Mounted() > before {
		m.presented++
	}
}

// handleMouse turns a press and release over a banner into a drag.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if v := m.host.hit(msg.Y); v != nil {
			m.dragView = v
			m.dragStart = msg.Y
		}
	case tea.MouseActionRelease:
		if m.dragView != nil {
			rows := msg.Y - m.dragStart
			m.dragView.dragEnded(float64(rows) * m.cfg.TUI.CellHeight)
			m.dragView = nil
		}
	}
	return m
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	footer := []string{m.status()}
	footer = append(footer, splitLines(m.help.View(m.keys))...)

	return compose(m.width, m.height, m.host.views, m.cfg.TUI.CellWidth, m.cfg.TUI.CellHeight, m.styles, footer)
}

// status describes the last banner event.
func (m Model) status() string {
	if m.last == nil || m.last.id == "" {
		return m.styles.Status.Render("no banner presented")
	}
	return m.styles.Status.Render(fmt.Sprintf("%s %s %s  (%d shown, %d on screen)",
		shortID(m.last.id), m.last.what, humanize.Time(m.last.at), m.presented, m.host.Mounted()))
}

// shortID returns the random tail of a banner ID.
func shortID(id string) string {
	if len(id) > 6 {
		return id[len(id)-6:]
	}
	return id
}

// Presented returns how many banners the model has shown.
func (m Model) Presented() int {
	return m.presented
}

// RunOptions configures the preview.
type RunOptions struct {
	Config  *config.Config
	Options banner.Options
	Content Content
	Meta    theme.Meta
	Dark    bool
	Logger  *slog.Logger

	// OnPresent is called after each banner is mounted.
	OnPresent func(id string)

	// ExitOnDismiss quits once every presented banner has removed itself.
	ExitOnDismiss bool
}

// Run starts the preview and blocks until it exits.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
		opts.Config = cfg
	}

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if cfg.TUI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(New(ctx, opts), programOpts...)
	_, err := p.Run()
	return err
}
