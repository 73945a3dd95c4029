package ui

import (
	"fmt"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/layout"
	"github.com/1broseidon/termdesk/internal/taskbar"
	"github.com/1broseidon/termdesk/internal/wm"
)

// Screen geometry shared by rendering and hit-testing.
const (
	startButtonWidth = 6
	taskButtonWidth  = 6
	trayWidth        = 12
	startMenuWidth   = 34
	signOutWidth     = 12
	thumbWidth       = 24
	thumbHeight      = 6
	contextMenuWidth = 22
	controlWidth     = 3
	minControlsWidth = 12
)

type hitKind int

const (
	hitBackground hitKind = iota
	hitIcon
	hitContextItem
	hitStartSearch
	hitStartEntry
	hitStartSignOut
	hitStartMenu
	hitThumb
	hitThumbClose
	hitStartButton
	hitTaskButton
	hitTaskbar
	hitMinimize
	hitMaximize
	hitClose
	hitTitle
	hitGrip
	hitBorder
	hitContent
)

// hit is the topmost element under a point.
type hit struct {
	kind  hitKind
	id    wm.ID
	app   apps.Kind
	index int
}

// key identifies the element for double-click detection.
func (h hit) key() string {
	return fmt.Sprintf("%d/%s/%d/%d", h.kind, h.id, h.app, h.index)
}

func (m *Model) taskbarHeight() int {
	return min(max(m.cfg.TaskbarHeight, 1), max(m.height, 1))
}

func (m *Model) taskbarRect() geom.Rect {
	th := m.taskbarHeight()
	return geom.Rect{X: 0, Y: m.height - th, Width: m.width, Height: th}
}

func (m *Model) workArea() geom.Rect {
	return layout.WorkArea(geom.Size{Width: m.width, Height: m.height}, m.taskbarHeight())
}

func (m *Model) startButtonRect() geom.Rect {
	bar := m.taskbarRect()
	return geom.Rect{X: 0, Y: bar.Y, Width: startButtonWidth, Height: bar.Height}
}

type taskSlot struct {
	button taskbar.Button
	rect   geom.Rect
}

func (m *Model) taskSlots() []taskSlot {
	bar := m.taskbarRect()
	buttons := m.bar.Buttons()
	slots := make([]taskSlot, 0, len(buttons))
	for i, b := range buttons {
		x := startButtonWidth + i*taskButtonWidth
		if x+taskButtonWidth > m.width-trayWidth {
			break
		}
		slots = append(slots, taskSlot{
			button: b,
			rect:   geom.Rect{X: x, Y: bar.Y, Width: taskButtonWidth, Height: bar.Height},
		})
	}
	return slots
}

type thumbSlot struct {
	window wm.Window
	rect   geom.Rect
	close  geom.Rect
}

// thumbSlots lays the hover preview out in a row above the hovered button.
func (m *Model) thumbSlots() []thumbSlot {
	kind, windows, ok := m.bar.Preview()
	if !ok {
		return nil
	}
	anchor := 0
	for _, s := range m.taskSlots() {
		if s.button.Kind == kind {
			anchor = s.rect.X
		}
	}
	total := len(windows) * thumbWidth
	x := max(min(anchor, m.width-total), 0)
	y := m.taskbarRect().Y - thumbHeight

	slots := make([]thumbSlot, 0, len(windows))
	for i, w := range windows {
		r := geom.Rect{X: x + i*thumbWidth, Y: y, Width: thumbWidth, Height: thumbHeight}
		slots = append(slots, thumbSlot{
			window: w,
			rect:   r,
			close:  geom.Rect{X: r.Right() - 4, Y: r.Y, Width: 3, Height: 1},
		})
	}
	return slots
}

func (m *Model) startMenuRect() geom.Rect {
	rows := max(len(m.bar.Start.Entries()), 1)
	h := 2 + rows + 2
	return geom.Rect{X: 0, Y: m.taskbarRect().Y - h, Width: min(startMenuWidth, m.width), Height: h}
}

func (m *Model) contextMenuRect() geom.Rect {
	menu := m.desk.Menu()
	h := len(menu.Items)
	x := max(min(menu.At.X, m.width-contextMenuWidth), 0)
	y := max(min(menu.At.Y, m.taskbarRect().Y-h), 0)
	return geom.Rect{X: x, Y: y, Width: contextMenuWidth, Height: h}
}

// windowRect is where the window is drawn right now.
func (m *Model) windowRect(w wm.Window) geom.Rect {
	if r, ok := m.shown[w.ID]; ok {
		return r
	}
	return m.targetRect(w)
}

// targetRect is where the window belongs: the work area when maximized,
// its restored geometry otherwise.
func (m *Model) targetRect(w wm.Window) geom.Rect {
	if w.Maximized {
		return m.workArea()
	}
	return w.Bounds()
}

// contentRect is the pane area inside the frame.
func contentRect(r geom.Rect) geom.Rect {
	return geom.Rect{X: r.X + 1, Y: r.Y + 1, Width: max(r.Width-2, 0), Height: max(r.Height-2, 0)}
}

func (m *Model) hitTest(p geom.Point) hit {
	if menu := m.desk.Menu(); menu.Visible {
		if r := m.contextMenuRect(); r.Contains(p) {
			return hit{kind: hitContextItem, index: p.Y - r.Y}
		}
	}

	if m.bar.Start.Visible() {
		r := m.startMenuRect()
		if r.Contains(p) {
			entries := m.bar.Start.Entries()
			row := p.Y - r.Y
			switch {
			case row == 0:
				return hit{kind: hitStartSearch}
			case row >= 2 && row-2 < len(entries):
				return hit{kind: hitStartEntry, app: entries[row-2], index: row - 2}
			case row == r.Height-1 && p.X >= r.Right()-signOutWidth:
				return hit{kind: hitStartSignOut}
			}
			return hit{kind: hitStartMenu}
		}
	}

	for _, s := range m.thumbSlots() {
		if s.close.Contains(p) {
			return hit{kind: hitThumbClose, id: s.window.ID}
		}
		if s.rect.Contains(p) {
			return hit{kind: hitThumb, id: s.window.ID}
		}
	}

	if m.taskbarRect().Contains(p) {
		if m.startButtonRect().Contains(p) {
			return hit{kind: hitStartButton}
		}
		for _, s := range m.taskSlots() {
			if s.rect.Contains(p) {
				return hit{kind: hitTaskButton, app: s.button.Kind}
			}
		}
		return hit{kind: hitTaskbar}
	}

	stacked := m.mgr.Stacked()
	for i := len(stacked) - 1; i >= 0; i-- {
		w := stacked[i]
		r := m.windowRect(w)
		if !r.Contains(p) {
			continue
		}
		return hit{kind: windowPart(r, p), id: w.ID, app: w.Kind}
	}

	if m.icons != nil {
		if k, ok := m.icons.At(p); ok {
			return hit{kind: hitIcon, app: k}
		}
	}
	return hit{kind: hitBackground}
}

// windowPart classifies a point inside a window frame.
func windowPart(r geom.Rect, p geom.Point) hitKind {
	local := p.Sub(r.Origin())
	if local.Y == 0 {
		if r.Width >= minControlsWidth {
			switch {
			case local.X >= r.Width-controlWidth:
				return hitClose
			case local.X >= r.Width-2*controlWidth:
				return hitMaximize
			case local.X >= r.Width-3*controlWidth:
				return hitMinimize
			}
		}
		return hitTitle
	}
	if local.Y == r.Height-1 && local.X >= r.Width-2 {
		return hitGrip
	}
	if contentRect(r).Contains(p) {
		return hitContent
	}
	return hitBorder
}
