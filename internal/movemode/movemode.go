// Package movemode moves and resizes windows from the keyboard: arrows pick
// a window, enter grabs it, arrows then nudge it until it is dropped.
package movemode

import (
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/wm"
)

// Phase represents the current phase of move mode
type Phase int

const (
	// PhaseInactive means move mode is not active
	PhaseInactive Phase = iota
	// PhaseSelecting means the user is choosing which window to move
	PhaseSelecting
	// PhaseGrabbed means a window is grabbed and follows the arrow keys
	PhaseGrabbed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseSelecting:
		return "selecting"
	case PhaseGrabbed:
		return "grabbed"
	default:
		return "unknown"
	}
}

// Manager is the subset of the window manager move mode drives.
type Manager interface {
	Stacked() []wm.Window
	Get(id wm.ID) (wm.Window, bool)
	ActiveID() wm.ID
	Focus(id wm.ID)
	Move(id wm.ID, x, y int)
	Resize(id wm.ID, width, height int)
}

// Options tunes step sizes and limits.
type Options struct {
	// Step is how far one arrow press moves or resizes, per axis.
	Step    geom.Point
	MinSize geom.Size
}

// DefaultStep moves two columns per horizontal press since terminal cells
// are about twice as tall as they are wide.
var DefaultStep = geom.Point{X: 2, Y: 1}

// Mode is the move mode controller. It is driven from the UI goroutine.
type Mode struct {
	mgr  Manager
	opts Options

	phase    Phase
	selected wm.ID
	// before is the grabbed window as it was when grabbed, for Cancel.
	before wm.Window
}

// New creates an inactive controller.
func New(mgr Manager, opts Options) *Mode {
	m := &Mode{mgr: mgr}
	m.SetOptions(opts)
	return m
}

// SetOptions replaces step sizes and limits.
func (m *Mode) SetOptions(opts Options) {
	if opts.Step.X < 1 || opts.Step.Y < 1 {
		opts.Step = DefaultStep
	}
	opts.MinSize.Width = max(opts.MinSize.Width, 1)
	opts.MinSize.Height = max(opts.MinSize.Height, 1)
	m.opts = opts
}

// Phase returns the current phase.
func (m *Mode) Phase() Phase { return m.phase }

// Active reports whether move mode is on.
func (m *Mode) Active() bool { return m.phase != PhaseInactive }

// Selected returns the highlighted or grabbed window.
func (m *Mode) Selected() wm.ID { return m.selected }

// Enter starts selecting, beginning with the active window or else the
// topmost one. It reports false when no window is visible.
func (m *Mode) Enter() bool {
	ws := m.mgr.Stacked()
	if len(ws) == 0 {
		m.Reset()
		return false
	}
	m.selected = ws[len(ws)-1].ID
	active := m.mgr.ActiveID()
	for _, w := range ws {
		if w.ID == active {
			m.selected = active
		}
	}
	m.phase = PhaseSelecting
	return true
}

// Navigate moves the highlight to the nearest window in dir while
// selecting, or moves the grabbed window one step.
func (m *Mode) Navigate(dir Direction) {
	switch m.phase {
	case PhaseSelecting:
		ws := m.mgr.Stacked()
		if len(ws) == 0 {
			m.Reset()
			return
		}
		rects := make([]geom.Rect, len(ws))
		current := -1
		for i, w := range ws {
			rects[i] = w.Bounds()
			if w.ID == m.selected {
				current = i
			}
		}
		if current < 0 {
			m.selected = ws[len(ws)-1].ID
			return
		}
		m.selected = ws[NavigateSpatial(current, dir, rects)].ID
	case PhaseGrabbed:
		w, ok := m.grabbed()
		if !ok {
			return
		}
		d := dir.Delta()
		m.mgr.Move(w.ID, w.Position.X+d.X*m.opts.Step.X, w.Position.Y+d.Y*m.opts.Step.Y)
	}
}

// Resize grows or shrinks the grabbed window one step, keeping its top-left
// corner in place.
func (m *Mode) Resize(dir Direction) {
	if m.phase != PhaseGrabbed {
		return
	}
	w, ok := m.grabbed()
	if !ok {
		return
	}
	d := dir.Delta()
	width := max(w.Size.Width+d.X*m.opts.Step.X, m.opts.MinSize.Width)
	height := max(w.Size.Height+d.Y*m.opts.Step.Y, m.opts.MinSize.Height)
	m.mgr.Resize(w.ID, width, height)
}

// Grab focuses the highlighted window and starts moving it. Maximized
// windows cannot be grabbed.
func (m *Mode) Grab() bool {
	if m.phase != PhaseSelecting {
		return false
	}
	w, ok := m.mgr.Get(m.selected)
	if !ok || w.Minimized {
		m.Reset()
		return false
	}
	if w.Maximized {
		return false
	}
	m.mgr.Focus(w.ID)
	m.before = w
	m.phase = PhaseGrabbed
	return true
}

// Drop keeps the grabbed window where it is and leaves move mode.
func (m *Mode) Drop() {
	if m.phase == PhaseGrabbed {
		m.Reset()
	}
}

// Cancel leaves move mode. A grabbed window goes back to where it was
// grabbed.
func (m *Mode) Cancel() {
	if m.phase == PhaseGrabbed {
		if _, ok := m.mgr.Get(m.before.ID); ok {
			m.mgr.Move(m.before.ID, m.before.Position.X, m.before.Position.Y)
			m.mgr.Resize(m.before.ID, m.before.Size.Width, m.before.Size.Height)
		}
	}
	m.Reset()
}

// Forget drops the window from move mode, e.g. after it closed or was
// minimized.
func (m *Mode) Forget(id wm.ID) {
	if m.phase != PhaseInactive && m.selected == id {
		m.Reset()
	}
}

// Reset turns move mode off.
func (m *Mode) Reset() {
	m.phase = PhaseInactive
	m.selected = ""
	m.before = wm.Window{}
}

func (m *Mode) grabbed() (wm.Window, bool) {
	w, ok := m.mgr.Get(m.selected)
	if !ok || w.Minimized || w.Maximized {
		m.Reset()
		return wm.Window{}, false
	}
	return w, true
}
