// Package ui is the bubbletea program that hosts the desktop: it turns
// terminal mouse and key events into controller calls and composites the
// desktop, windows, taskbar and overlays into one frame.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/config"
	"github.com/1broseidon/termdesk/internal/desktop"
	"github.com/1broseidon/termdesk/internal/frame"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/layout"
	"github.com/1broseidon/termdesk/internal/logging"
	"github.com/1broseidon/termdesk/internal/movemode"
	"github.com/1broseidon/termdesk/internal/panes"
	"github.com/1broseidon/termdesk/internal/session"
	"github.com/1broseidon/termdesk/internal/taskbar"
	"github.com/1broseidon/termdesk/internal/telemetry"
	"github.com/1broseidon/termdesk/internal/wm"
)

// Deps are the collaborators the desktop is built from. Only Config is
// required.
type Deps struct {
	Config *config.Config
	// ConfigPath is re-read by the context menu's Refresh entry.
	ConfigPath string
	Logger     *logging.Logger
	Tracer     *telemetry.Tracer
	// Reloads delivers config file changes while the desktop runs.
	Reloads <-chan config.Reload
	// Scheduler replaces the tea.Tick based scheduler, e.g. in tests.
	Scheduler frame.Scheduler
	Now       func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	cfg     *config.Config
	cfgPath string
	logger  *logging.Logger
	tracer  *telemetry.Tracer
	reloads <-chan config.Reload
	now     func() time.Time

	mgr     *wm.Manager
	frames  *frame.Controller
	desk    *desktop.Controller
	bar     *taskbar.Taskbar
	session *session.Session
	icons   *layout.Icons
	move    *movemode.Mode
	ticks   *tickScheduler

	panes   map[wm.ID]panes.Pane
	focused wm.ID
	shown   map[wm.ID]geom.Rect
	tweens  map[wm.ID]tween

	theme      theme
	clicks     clickTracker
	search     textinput.Model
	searchOpen bool
	form       *huh.Form
	signInOK   bool

	width     int
	height    int
	clock     time.Time
	animating bool
	press     hit
	pressed   bool
	queued    []tea.Cmd
}

// New builds the desktop in its locked state.
func New(deps Deps) *Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer, _ = telemetry.New(context.Background(), telemetry.Config{})
	}

	m := &Model{
		cfg:     cfg,
		cfgPath: deps.ConfigPath,
		logger:  logger,
		tracer:  tracer,
		reloads: deps.Reloads,
		now:     now,
		panes:   make(map[wm.ID]panes.Pane),
		shown:   make(map[wm.ID]geom.Rect),
		tweens:  make(map[wm.ID]tween),
		clock:   now(),
	}

	sched := deps.Scheduler
	if sched == nil {
		m.ticks = &tickScheduler{}
		sched = m.ticks
	}

	m.mgr = wm.NewManager(
		wm.WithClock(now),
		wm.WithCascade(geom.Point{X: cfg.Cascade.OriginX, Y: cfg.Cascade.OriginY}, cfg.Cascade.Step),
		wm.WithSizer(cfg.DefaultSize),
	)
	m.frames = frame.New(m.mgr, sched, frameOptions(cfg, now))
	m.session = session.New(cfg.Username, logger.Logger)
	m.bar = taskbar.New(m.mgr, cfg.PinnedApps, m.signOut)
	m.bar.SetCloser(m.frames.Close)
	m.desk = desktop.New(nil, m.mgr, m.bar.Start)
	m.move = movemode.New(m.mgr, movemode.Options{MinSize: cfg.MinWindowSize.Size()})

	m.mgr.Subscribe(m.frames.HandleEvent)
	m.mgr.Subscribe(m.onWindowEvent)
	m.mgr.Subscribe(m.tracer.Observe)
	m.session.OnUnlocked(func() {
		m.bar.Start.Close()
		m.desk.CloseMenu()
	})

	m.search = textinput.New()
	m.search.Prompt = "⌕ "
	m.search.Placeholder = "Type to search"
	m.search.Width = startMenuWidth - 6

	m.theme = newTheme(cfg.Theme)
	m.clicks.threshold = cfg.DoubleClick()
	return m
}

func frameOptions(cfg *config.Config, now func() time.Time) frame.Options {
	return frame.Options{
		CloseDelay: cfg.CloseDelay(),
		Transition: cfg.Transition(),
		MinSize:    cfg.MinWindowSize.Size(),
		Now:        now,
	}
}

// Manager exposes the window manager, e.g. for scripted sessions.
func (m *Model) Manager() *wm.Manager { return m.mgr }

// Session exposes the lock state.
func (m *Model) Session() *session.Session { return m.session }

func (m *Model) onWindowEvent(ev wm.Event) {
	id := ev.Window.ID
	switch ev.Kind {
	case wm.EventOpened:
		p := panes.New(ev.Window.Kind)
		m.panes[id] = p
		if cmd := panes.Init(p); cmd != nil {
			m.queued = append(m.queued, cmd)
		}
		m.bar.Start.Close()
	case wm.EventClosed:
		m.move.Forget(id)
		delete(m.panes, id)
		delete(m.shown, id)
		delete(m.tweens, id)
		if m.focused == id {
			m.focused = ""
		}
	case wm.EventMinimized:
		m.move.Forget(id)
		delete(m.shown, id)
		delete(m.tweens, id)
	}
	m.logger.Debug("window event", "event", ev.Kind.String(), "id", string(id), "kind", ev.Window.Kind.String(), "z", ev.Window.Z, "active", string(ev.Active))
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(clockTick(), waitReload(m.reloads))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	case scheduledMsg:
		msg.fn()
	case frameMsg:
		m.animating = false
		m.frames.AdvanceFrame()
	case clockMsg:
		m.clock = time.Time(msg)
		cmds = append(cmds, clockTick())
	case reloadMsg:
		m.handleReload(config.Reload(msg))
		cmds = append(cmds, waitReload(m.reloads))
	default:
		if m.form != nil {
			cmds = append(cmds, m.updateSignIn(msg))
		}
		if m.searchOpen {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
		for _, p := range m.panes {
			cmds = append(cmds, p.Update(msg))
		}
	}
	cmds = append(cmds, m.settle()...)
	return m, tea.Batch(cmds...)
}

// settle brings derived state in line with the controllers after every
// update and returns the commands that produced.
func (m *Model) settle() []tea.Cmd {
	m.syncGeometry()
	m.syncFocus()
	m.syncSearch()

	cmds := m.queued
	m.queued = nil
	if m.ticks != nil {
		cmds = append(cmds, m.ticks.drain()...)
	}
	if !m.animating && m.needsFrame() {
		m.animating = true
		cmds = append(cmds, frameTick())
	}
	return cmds
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	area := m.workArea()
	if m.icons == nil {
		icons, err := layout.NewIcons(layout.DefaultFlow(), apps.All(), area)
		if err != nil {
			m.logger.Warn("icon layout failed", "error", err)
			return
		}
		m.icons = icons
		m.desk.SetLayout(icons)
		return
	}
	if err := m.icons.Reflow(area); err != nil {
		m.logger.Warn("icon layout failed", "error", err)
	}
}

func (m *Model) syncGeometry() {
	now := m.now()
	live := make(map[wm.ID]bool)
	for _, w := range m.mgr.Stacked() {
		live[w.ID] = true
		target := m.targetRect(w)
		cur, seen := m.shown[w.ID]
		tw, moving := m.tweens[w.ID]
		switch {
		case !seen:
			m.shown[w.ID] = target
		case moving && tw.to == target:
			m.shown[w.ID] = tw.at(now)
			if tw.done(now) {
				delete(m.tweens, w.ID)
			}
		case cur != target:
			d := m.frames.Transition(w.ID)
			if d <= 0 {
				m.shown[w.ID] = target
				delete(m.tweens, w.ID)
				break
			}
			m.tweens[w.ID] = tween{from: cur, to: target, start: now, dur: d}
		}
		if p, ok := m.panes[w.ID]; ok {
			p.SetSize(contentRect(m.shown[w.ID]).Dims())
		}
	}
	for id := range m.shown {
		if !live[id] {
			delete(m.shown, id)
			delete(m.tweens, id)
		}
	}
}

func (m *Model) syncFocus() {
	active := m.mgr.ActiveID()
	if active == m.focused {
		return
	}
	if p, ok := m.panes[m.focused]; ok {
		p.Blur()
	}
	if p, ok := m.panes[active]; ok {
		p.Focus()
	}
	m.focused = active
}

func (m *Model) syncSearch() {
	visible := m.bar.Start.Visible()
	switch {
	case visible && !m.searchOpen:
		m.search.Reset()
		m.search.Focus()
		m.searchOpen = true
	case !visible && m.searchOpen:
		m.search.Blur()
		m.searchOpen = false
	}
}

func (m *Model) needsFrame() bool {
	if len(m.tweens) > 0 {
		return true
	}
	for _, w := range m.mgr.Windows() {
		if m.frames.Phase(w.ID) != frame.PhaseOpen {
			return true
		}
	}
	return false
}

func (m *Model) handleReload(r config.Reload) {
	if r.Err != nil {
		m.logger.Warn("config reload failed", "error", r.Err)
		return
	}
	if r.Result == nil || r.Result.Config == nil {
		return
	}
	m.applyConfig(r.Result.Config)
	m.logger.Info("config reloaded", "file", r.Result.File)
}

// applyConfig switches to cfg. Existing windows keep their geometry.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.theme = newTheme(cfg.Theme)
	m.clicks.threshold = cfg.DoubleClick()
	m.logger.SetLevel(cfg.LogLevel)
	m.bar.SetPinned(cfg.PinnedApps)
	m.frames.SetOptions(frameOptions(cfg, m.now))
	m.move.SetOptions(movemode.Options{MinSize: cfg.MinWindowSize.Size()})
	m.mgr.SetCascade(geom.Point{X: cfg.Cascade.OriginX, Y: cfg.Cascade.OriginY}, cfg.Cascade.Step)
	m.mgr.SetSizer(cfg.DefaultSize)
	m.session.SetUser(cfg.Username)
	if m.width > 0 {
		m.resize(m.width, m.height)
	}
}

// refresh re-reads the config file and relays out the desktop.
func (m *Model) refresh() {
	if m.cfgPath != "" {
		res, err := config.LoadFromPath(m.cfgPath)
		m.handleReload(config.Reload{Result: res, Err: err})
	}
	if m.width > 0 {
		m.resize(m.width, m.height)
	}
}

// tween eases a window from one rect to another.
type tween struct {
	from, to geom.Rect
	start    time.Time
	dur      time.Duration
}

func (t tween) progress(now time.Time) float64 {
	if t.dur <= 0 {
		return 1
	}
	p := float64(now.Sub(t.start)) / float64(t.dur)
	return min(max(p, 0), 1)
}

func (t tween) done(now time.Time) bool { return t.progress(now) >= 1 }

// at returns the rect at now with an ease-out curve.
func (t tween) at(now time.Time) geom.Rect {
	p := t.progress(now)
	e := 1 - (1-p)*(1-p)*(1-p)
	lerp := func(a, b int) int { return a + int(float64(b-a)*e+0.5) }
	if p >= 1 {
		return t.to
	}
	return geom.Rect{
		X:      lerp(t.from.X, t.to.X),
		Y:      lerp(t.from.Y, t.to.Y),
		Width:  lerp(t.from.Width, t.to.Width),
		Height: lerp(t.from.Height, t.to.Height),
	}
}
