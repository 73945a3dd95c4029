// Package desktop interprets pointer gestures on the desktop background:
// rubber-band icon selection, icon clicks and the background context menu.
package desktop

import (
	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/wm"
)

// State represents the current gesture state of the controller
type State int

const (
	// StateIdle means no selection gesture is in progress
	StateIdle State = iota
	// StateSelecting means the pointer is down on the background and the
	// selection box follows it
	StateSelecting
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

// IconLayout reports where each icon is currently drawn.
type IconLayout interface {
	Kinds() []apps.Kind
	Bounds(k apps.Kind) (geom.Rect, bool)
}

// Opener launches applications.
type Opener interface {
	Open(k apps.Kind) wm.ID
}

// Dismisser hides an overlay such as the start menu.
type Dismisser interface {
	Close()
}

// Target says what element received a click.
type Target int

const (
	// TargetBackground is the desktop surface itself.
	TargetBackground Target = iota
	// TargetChild is any element on the desktop whose click bubbled up.
	TargetChild
)

// Controller is the desktop interaction state machine.
type Controller struct {
	layout    IconLayout
	opener    Opener
	startMenu Dismisser

	state    State
	anchor   geom.Point
	current  geom.Point
	boxShown bool
	moved    bool

	selected map[apps.Kind]bool
	menu     ContextMenu
}

// New creates an idle controller.
func New(layout IconLayout, opener Opener, startMenu Dismisser) *Controller {
	return &Controller{
		layout:    layout,
		opener:    opener,
		startMenu: startMenu,
		selected:  make(map[apps.Kind]bool),
	}
}

// SetLayout swaps the icon layout, e.g. after the screen was resized.
func (c *Controller) SetLayout(l IconLayout) {
	c.layout = l
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// PointerDown starts a selection gesture at p. It is ignored while a
// gesture is already in progress.
func (c *Controller) PointerDown(p geom.Point) {
	if c.boxShown {
		return
	}
	c.clearSelection()
	c.menu.hide()
	c.closeStartMenu()

	c.state = StateSelecting
	c.anchor = p
	c.current = p
	c.boxShown = true
	c.moved = false
}

// PointerMove extends the selection box to p and recomputes the selection
// from scratch.
func (c *Controller) PointerMove(p geom.Point) {
	if c.state != StateSelecting {
		return
	}
	if p != c.anchor {
		c.moved = true
	}
	c.current = p
	box := geom.FromCorners(c.anchor, c.current)

	next := make(map[apps.Kind]bool)
	if c.layout != nil {
		for _, k := range c.layout.Kinds() {
			r, ok := c.layout.Bounds(k)
			if ok && r.Overlaps(box) {
				next[k] = true
			}
		}
	}
	c.selected = next
}

// PointerUp ends the selection gesture, keeping the last selection.
func (c *Controller) PointerUp() {
	c.state = StateIdle
	c.boxShown = false
}

// ClickIcon selects exactly k.
func (c *Controller) ClickIcon(k apps.Kind) {
	c.selected = map[apps.Kind]bool{k: true}
}

// DoubleClickIcon opens the application behind the icon.
func (c *Controller) DoubleClickIcon(k apps.Kind) wm.ID {
	return c.opener.Open(k)
}

// Click handles a completed click on the desktop. Menus are always
// dismissed; the selection is cleared only for a click that landed on the
// background itself and was not the end of a drag.
func (c *Controller) Click(target Target) {
	c.menu.hide()
	c.closeStartMenu()
	if target == TargetBackground && !c.moved {
		c.clearSelection()
	}
	c.moved = false
}

// RightClick opens the context menu at p.
func (c *Controller) RightClick(p geom.Point) {
	c.closeStartMenu()
	c.menu.show(p)
}

// Selection returns the selected icons in layout order.
func (c *Controller) Selection() []apps.Kind {
	var out []apps.Kind
	if c.layout == nil {
		return out
	}
	for _, k := range c.layout.Kinds() {
		if c.selected[k] {
			out = append(out, k)
		}
	}
	return out
}

// IsSelected reports whether k is selected.
func (c *Controller) IsSelected(k apps.Kind) bool {
	return c.selected[k]
}

// SelectionBox returns the normalized selection rectangle while a gesture
// is in progress.
func (c *Controller) SelectionBox() (geom.Rect, bool) {
	if !c.boxShown {
		return geom.Rect{}, false
	}
	return geom.FromCorners(c.anchor, c.current), true
}

// Menu returns the context menu state.
func (c *Controller) Menu() ContextMenu {
	return c.menu
}

// CloseMenu hides the context menu.
func (c *Controller) CloseMenu() {
	c.menu.hide()
}

// ChooseMenuItem dismisses the menu and returns the chosen item so the
// caller can act on it.
func (c *Controller) ChooseMenuItem(i int) (MenuItem, bool) {
	if !c.menu.Visible || i < 0 || i >= len(c.menu.Items) {
		return 0, false
	}
	item := c.menu.Items[i]
	c.menu.hide()
	return item, true
}

func (c *Controller) clearSelection() {
	if len(c.selected) > 0 {
		c.selected = make(map[apps.Kind]bool)
	}
}

func (c *Controller) closeStartMenu() {
	if c.startMenu != nil {
		c.startMenu.Close()
	}
}
