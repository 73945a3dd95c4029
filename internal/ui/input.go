package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/termdesk/internal/desktop"
	"github.com/1broseidon/termdesk/internal/frame"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/movemode"
	"github.com/1broseidon/termdesk/internal/panes"
	"github.com/1broseidon/termdesk/internal/session"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.session.State() {
	case session.StateLocked:
		m.wake()
		return m.signInInit()
	case session.StateSignIn:
		if msg.String() == "esc" {
			m.cancelSignIn()
			return nil
		}
		return m.updateSignIn(msg)
	}

	if m.bar.Start.Visible() {
		switch msg.String() {
		case "esc", "ctrl+s":
			m.bar.Start.Close()
			return nil
		case "enter":
			if entries := m.bar.Start.Entries(); len(entries) > 0 {
				m.bar.Start.Launch(entries[0])
			}
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.bar.Start.SetQuery(m.search.Value())
		return cmd
	}

	if m.move.Active() {
		m.moveKey(msg.String())
		return nil
	}

	switch msg.String() {
	case "ctrl+w":
		m.desk.CloseMenu()
		m.move.Enter()
		return nil
	case "esc":
		if m.desk.Menu().Visible {
			m.desk.CloseMenu()
			return nil
		}
	case "ctrl+s":
		m.desk.CloseMenu()
		m.bar.Start.Toggle()
		return nil
	case "ctrl+l":
		m.signOut()
		return nil
	case "ctrl+x":
		if id := m.mgr.ActiveID(); id != "" {
			m.frames.Close(id)
		}
		return nil
	}

	if id := m.mgr.ActiveID(); id != "" {
		if p, ok := m.panes[id]; ok && m.frames.Interactive(id) {
			return p.Update(msg)
		}
		return nil
	}
	if msg.String() == "enter" {
		for _, k := range m.desk.Selection() {
			m.desk.DoubleClickIcon(k)
		}
	}
	return nil
}

var moveKeys = map[string]movemode.Direction{
	"up":    movemode.DirUp,
	"down":  movemode.DirDown,
	"left":  movemode.DirLeft,
	"right": movemode.DirRight,
}

// moveKey drives keyboard move mode: arrows select or nudge, shift+arrows
// resize, enter grabs and drops, esc and ctrl+w leave.
func (m *Model) moveKey(key string) {
	if dir, ok := moveKeys[key]; ok {
		m.move.Navigate(dir)
		return
	}
	if dir, ok := moveKeys[strings.TrimPrefix(key, "shift+")]; ok {
		m.move.Resize(dir)
		return
	}
	switch key {
	case "enter":
		if m.move.Phase() == movemode.PhaseGrabbed {
			m.move.Drop()
		} else if m.frames.Interactive(m.move.Selected()) {
			m.move.Grab()
		}
	case "esc", "ctrl+w":
		m.move.Cancel()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := geom.Point{X: msg.X, Y: msg.Y}
	switch m.session.State() {
	case session.StateLocked:
		if msg.Action == tea.MouseActionPress {
			m.wake()
			return m.signInInit()
		}
		return nil
	case session.StateSignIn:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickSignIn(p)
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.leftPress(p, msg)
		case tea.MouseButtonRight:
			m.rightPress(p)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			return m.forwardToPane(m.hitTest(p), p, msg, 1)
		}
	case tea.MouseActionMotion:
		return m.motion(p, msg)
	case tea.MouseActionRelease:
		return m.release(p, msg)
	}
	return nil
}

func (m *Model) leftPress(p geom.Point, msg tea.MouseMsg) tea.Cmd {
	m.move.Reset()
	h := m.hitTest(p)
	clicks := m.clicks.press(h.key(), p, m.now())
	m.press, m.pressed = h, true

	if h.kind != hitContextItem {
		m.desk.CloseMenu()
	}
	switch h.kind {
	case hitStartSearch, hitStartEntry, hitStartSignOut, hitStartMenu, hitStartButton:
	default:
		m.bar.Start.Close()
	}

	switch h.kind {
	case hitContextItem:
		if item, ok := m.desk.ChooseMenuItem(h.index); ok {
			m.menuAction(item)
		}
	case hitStartEntry:
		m.bar.Start.Launch(h.app)
	case hitStartSignOut:
		m.bar.Start.SignOut()
	case hitStartButton:
		m.bar.Start.Toggle()
	case hitThumb:
		m.bar.ClickThumbnail(h.id)
	case hitThumbClose:
		m.bar.CloseThumbnail(h.id)
	case hitTaskButton:
		m.bar.Click(h.app)
	case hitMinimize:
		m.frames.Minimize(h.id)
	case hitMaximize:
		m.frames.Maximize(h.id)
	case hitClose:
		m.frames.Close(h.id)
	case hitTitle:
		if clicks == 2 {
			m.frames.TitleDoubleClick(h.id)
		} else {
			m.frames.TitlePointerDown(h.id, p)
		}
	case hitGrip:
		m.frames.ResizePointerDown(h.id, p)
	case hitBorder:
		if m.frames.Interactive(h.id) {
			m.mgr.Focus(h.id)
		}
	case hitContent:
		if !m.frames.Interactive(h.id) {
			return nil
		}
		m.mgr.Focus(h.id)
		return m.forwardToPane(h, p, msg, clicks)
	case hitIcon:
		if clicks == 2 {
			m.desk.DoubleClickIcon(h.app)
		} else {
			m.desk.ClickIcon(h.app)
		}
	case hitBackground:
		m.desk.PointerDown(p)
	}
	return nil
}

func (m *Model) rightPress(p geom.Point) {
	m.clicks.reset()
	if h := m.hitTest(p); h.kind == hitBackground || h.kind == hitIcon {
		m.desk.RightClick(p)
	}
}

func (m *Model) motion(p geom.Point, msg tea.MouseMsg) tea.Cmd {
	if state, _ := m.frames.Gesture(); state != frame.DragIdle {
		m.frames.PointerMove(p)
		return nil
	}
	if m.desk.State() == desktop.StateSelecting {
		m.desk.PointerMove(p)
		return nil
	}
	if m.pressed && m.press.kind == hitContent {
		return m.forwardToPane(m.press, p, msg, 1)
	}
	m.hover(p)
	return nil
}

// hover keeps the thumbnail preview open while the pointer is over a task
// button or the thumbnails themselves.
func (m *Model) hover(p geom.Point) {
	switch h := m.hitTest(p); h.kind {
	case hitTaskButton:
		m.bar.Hover(h.app)
	case hitThumb, hitThumbClose:
	default:
		m.bar.Leave()
	}
}

func (m *Model) release(p geom.Point, msg tea.MouseMsg) tea.Cmd {
	press, pressed := m.press, m.pressed
	m.pressed = false
	m.frames.PointerUp()
	if m.desk.State() == desktop.StateSelecting {
		m.desk.PointerUp()
	}
	if !pressed {
		return nil
	}
	switch press.kind {
	case hitBackground:
		m.desk.Click(desktop.TargetBackground)
	case hitIcon:
		m.desk.Click(desktop.TargetChild)
	case hitContent:
		return m.forwardToPane(press, p, msg, 1)
	}
	return nil
}

// forwardToPane delivers a mouse event to the pane of the window h hit, in
// content coordinates.
func (m *Model) forwardToPane(h hit, p geom.Point, msg tea.MouseMsg, clicks int) tea.Cmd {
	if h.kind != hitContent || !m.frames.Interactive(h.id) {
		return nil
	}
	pane, ok := m.panes[h.id]
	if !ok {
		return nil
	}
	w, ok := m.mgr.Get(h.id)
	if !ok {
		return nil
	}
	origin := contentRect(m.windowRect(w)).Origin()
	return pane.Update(panes.Mouse{
		Point:  p.Sub(origin),
		Action: msg.Action,
		Button: msg.Button,
		Clicks: clicks,
	})
}

func (m *Model) menuAction(item desktop.MenuItem) {
	m.logger.Info("desktop menu", "item", item.String())
	if item == desktop.MenuRefresh {
		m.refresh()
	}
}
