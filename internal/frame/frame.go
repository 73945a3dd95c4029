// Package frame drives the per-window interaction state: title-bar drags,
// corner resizes, the window controls and the open/close transitions.
package frame

import (
	"time"

	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/wm"
)

// Phase is the visual lifecycle phase of a window frame
type Phase int

const (
	// PhaseOpening is the first frame after a window was created
	PhaseOpening Phase = iota
	// PhaseOpen is the steady state
	PhaseOpen
	// PhaseClosing means close was requested and removal is pending
	PhaseClosing
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// DragState is the pointer gesture state
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragResizing
)

// String returns the string representation of the drag state
func (d DragState) String() string {
	switch d {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Manager is the subset of the window manager the frame controller drives.
type Manager interface {
	Get(id wm.ID) (wm.Window, bool)
	Focus(id wm.ID)
	Move(id wm.ID, x, y int)
	Resize(id wm.ID, width, height int)
	Minimize(id wm.ID)
	ToggleMaximize(id wm.ID)
	Close(id wm.ID)
}

// Scheduler runs fn once after d. Implementations must invoke fn on the same
// goroutine that drives the controller.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Options tunes timings and limits.
type Options struct {
	CloseDelay time.Duration
	Transition time.Duration
	MinSize    geom.Size
	Now        func() time.Time
}

type gesture struct {
	state      DragState
	id         wm.ID
	offset     geom.Point
	startPoint geom.Point
	startSize  geom.Size
}

type frameState struct {
	phase   Phase
	closing time.Time
}

// Controller holds the frame state of every mounted window. At most one
// drag or resize gesture is active at a time.
type Controller struct {
	mgr   Manager
	sched Scheduler
	opts  Options

	frames map[wm.ID]*frameState
	drag   gesture
}

// New creates a controller.
func New(mgr Manager, sched Scheduler, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MinSize.Width < 1 {
		opts.MinSize.Width = 1
	}
	if opts.MinSize.Height < 1 {
		opts.MinSize.Height = 1
	}
	return &Controller{
		mgr:    mgr,
		sched:  sched,
		opts:   opts,
		frames: make(map[wm.ID]*frameState),
	}
}

// SetOptions replaces timings and limits, e.g. after a config reload.
func (c *Controller) SetOptions(opts Options) {
	if opts.Now == nil {
		opts.Now = c.opts.Now
	}
	if opts.MinSize.Width < 1 {
		opts.MinSize.Width = 1
	}
	if opts.MinSize.Height < 1 {
		opts.MinSize.Height = 1
	}
	c.opts = opts
}

// HandleEvent keeps frames in step with the manager: new windows mount in
// the opening phase and removed windows are unmounted.
func (c *Controller) HandleEvent(ev wm.Event) {
	switch ev.Kind {
	case wm.EventOpened:
		c.Mount(ev.Window.ID)
	case wm.EventClosed:
		c.Unmount(ev.Window.ID)
	}
}

// Mount registers a freshly opened window.
func (c *Controller) Mount(id wm.ID) {
	c.frames[id] = &frameState{phase: PhaseOpening}
}

// Unmount forgets the window and ends any gesture it owned.
func (c *Controller) Unmount(id wm.ID) {
	delete(c.frames, id)
	if c.drag.state != DragIdle && c.drag.id == id {
		c.drag = gesture{}
	}
}

// AdvanceFrame is called once per rendered frame; it finishes the opening
// transition of every window mounted since the previous frame.
func (c *Controller) AdvanceFrame() {
	for _, f := range c.frames {
		if f.phase == PhaseOpening {
			f.phase = PhaseOpen
		}
	}
}

// Phase returns the window's phase. Unknown windows report PhaseOpen.
func (c *Controller) Phase(id wm.ID) Phase {
	if f, ok := c.frames[id]; ok {
		return f.phase
	}
	return PhaseOpen
}

// Interactive reports whether the window accepts input.
func (c *Controller) Interactive(id wm.ID) bool {
	return c.Phase(id) != PhaseClosing
}

// Gesture returns the active gesture state and the window it belongs to.
func (c *Controller) Gesture() (DragState, wm.ID) {
	return c.drag.state, c.drag.id
}

// Transition returns how long geometry changes of the window should ease:
// zero while it is being dragged or resized.
func (c *Controller) Transition(id wm.ID) time.Duration {
	if c.drag.state != DragIdle && c.drag.id == id {
		return 0
	}
	return c.opts.Transition
}

// Fade returns how far the window has faded out, from 0 (opaque) to 1.
func (c *Controller) Fade(id wm.ID) float64 {
	f, ok := c.frames[id]
	if !ok {
		return 0
	}
	switch f.phase {
	case PhaseOpening:
		return 0.5
	case PhaseClosing:
		if c.opts.CloseDelay <= 0 {
			return 1
		}
		p := float64(c.opts.Now().Sub(f.closing)) / float64(c.opts.CloseDelay)
		if p < 0 {
			return 0
		}
		if p > 1 {
			return 1
		}
		return p
	default:
		return 0
	}
}

// TitlePointerDown focuses the window and, unless it is maximized, starts
// dragging it by the title bar.
func (c *Controller) TitlePointerDown(id wm.ID, p geom.Point) {
	if !c.Interactive(id) {
		return
	}
	w, ok := c.mgr.Get(id)
	if !ok {
		return
	}
	c.mgr.Focus(id)
	if w.Maximized {
		return
	}
	c.drag = gesture{
		state:  DragDragging,
		id:     id,
		offset: p.Sub(w.Position),
	}
}

// ResizePointerDown focuses the window and starts resizing it from the
// bottom-right grip.
func (c *Controller) ResizePointerDown(id wm.ID, p geom.Point) {
	if !c.Interactive(id) {
		return
	}
	w, ok := c.mgr.Get(id)
	if !ok {
		return
	}
	c.mgr.Focus(id)
	if w.Maximized {
		return
	}
	c.drag = gesture{
		state:      DragResizing,
		id:         id,
		startPoint: p,
		startSize:  w.Size,
	}
}

// PointerMove follows the pointer anywhere on screen while a gesture is
// active. Positions are not clamped to the desktop.
func (c *Controller) PointerMove(p geom.Point) {
	switch c.drag.state {
	case DragDragging:
		origin := p.Sub(c.drag.offset)
		c.mgr.Move(c.drag.id, origin.X, origin.Y)
	case DragResizing:
		d := p.Sub(c.drag.startPoint)
		w := max(c.drag.startSize.Width+d.X, c.opts.MinSize.Width)
		h := max(c.drag.startSize.Height+d.Y, c.opts.MinSize.Height)
		c.mgr.Resize(c.drag.id, w, h)
	}
}

// PointerUp ends the active gesture.
func (c *Controller) PointerUp() {
	c.drag = gesture{}
}

// TitleDoubleClick toggles maximize.
func (c *Controller) TitleDoubleClick(id wm.ID) {
	if !c.Interactive(id) {
		return
	}
	c.PointerUp()
	c.mgr.ToggleMaximize(id)
}

// Minimize is the minimize control.
func (c *Controller) Minimize(id wm.ID) {
	if !c.Interactive(id) {
		return
	}
	c.mgr.Minimize(id)
}

// Maximize is the maximize/restore control.
func (c *Controller) Maximize(id wm.ID) {
	if !c.Interactive(id) {
		return
	}
	c.mgr.ToggleMaximize(id)
}

// Close starts the closing transition and schedules removal. Further
// close requests for the same window are ignored.
func (c *Controller) Close(id wm.ID) {
	if _, ok := c.mgr.Get(id); !ok {
		return
	}
	f, ok := c.frames[id]
	if !ok {
		f = &frameState{}
		c.frames[id] = f
	}
	if f.phase == PhaseClosing {
		return
	}
	f.phase = PhaseClosing
	f.closing = c.opts.Now()
	if c.drag.id == id {
		c.drag = gesture{}
	}
	c.sched.After(c.opts.CloseDelay, func() { c.FinishClose(id) })
}

// FinishClose removes the window. Calling it for a window that is already
// gone does nothing.
func (c *Controller) FinishClose(id wm.ID) {
	c.mgr.Close(id)
	c.Unmount(id)
}
