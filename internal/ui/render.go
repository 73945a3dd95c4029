package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/movemode"
	"github.com/1broseidon/termdesk/internal/session"
	"github.com/1broseidon/termdesk/internal/taskbar"
	"github.com/1broseidon/termdesk/internal/wm"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.session.State() != session.StateUnlocked {
		return m.lockView()
	}

	c := newCanvas(m.width, m.height, m.theme.desktop)
	m.drawIcons(c)
	m.drawSelectionBox(c)
	active := m.mgr.ActiveID()
	for _, w := range m.mgr.Stacked() {
		m.drawWindow(c, w, w.ID == active)
	}
	m.drawTaskbar(c)
	m.drawThumbnails(c)
	m.drawStartMenu(c)
	m.drawContextMenu(c)
	return c.String()
}

func (m *Model) drawIcons(c *canvas) {
	if m.icons == nil {
		return
	}
	for _, k := range m.icons.Kinds() {
		r, ok := m.icons.Bounds(k)
		if !ok {
			continue
		}
		block := apps.Lookup(k).Icon(apps.IconLarge).String()
		base := m.theme.desktop
		if m.desk.IsSelected(k) {
			base = m.theme.selected
			c.fill(r, base)
		}
		x := r.X + max((r.Width-lipgloss.Width(block))/2, 0)
		c.drawOn(x, r.Y, block, base)
	}
}

func (m *Model) drawSelectionBox(c *canvas) {
	box, ok := m.desk.SelectionBox()
	if !ok || box.Width < 1 || box.Height < 1 {
		return
	}
	st := m.theme.selection
	if box.Width == 1 || box.Height == 1 {
		for y := box.Y; y < box.Bottom(); y++ {
			c.drawOn(box.X, y, st.Render(strings.Repeat("·", box.Width)), st)
		}
		return
	}
	inner := strings.Repeat("─", box.Width-2)
	c.drawOn(box.X, box.Y, st.Render("┌"+inner+"┐"), st)
	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		c.drawOn(box.X, y, st.Render("│"), st)
		c.drawOn(box.Right()-1, y, st.Render("│"), st)
	}
	c.drawOn(box.X, box.Bottom()-1, st.Render("└"+inner+"┘"), st)
}

// windowStyles are the styles one window frame is drawn with.
type windowStyles struct {
	title, border, body lipgloss.Style
	plain               bool
}

func (m *Model) windowStyles(w wm.Window, active bool) windowStyles {
	if fade := m.frames.Fade(w.ID); fade > 0 {
		st := m.theme.faded(fade)
		return windowStyles{title: st, border: st, body: st, plain: true}
	}
	title := m.theme.title
	if active {
		title = m.theme.activeTitle
	}
	border := m.theme.border
	if m.move.Active() && m.move.Selected() == w.ID {
		border = m.theme.highlight
	}
	return windowStyles{title: title, border: border, body: m.theme.window}
}

func (m *Model) drawWindow(c *canvas, w wm.Window, active bool) {
	r := m.windowRect(w)
	if r.Width < 2 || r.Height < 2 {
		return
	}
	st := m.windowStyles(w, active)

	c.drawOn(r.X, r.Y, st.title.Render(titleBar(w, r.Width)), st.title)

	body := contentRect(r)
	c.fill(geom.Rect{X: r.X, Y: body.Y, Width: r.Width, Height: body.Height}, st.body)
	for y := body.Y; y < body.Bottom(); y++ {
		c.drawOn(r.X, y, st.border.Render("│"), st.border)
		c.drawOn(r.Right()-1, y, st.border.Render("│"), st.border)
	}
	c.drawOn(r.X, r.Bottom()-1, st.border.Render("╰"+strings.Repeat("─", r.Width-2)+"◢"), st.border)

	p, ok := m.panes[w.ID]
	if !ok || body.Empty() {
		return
	}
	lines := strings.Split(p.View(), "\n")
	if len(lines) > body.Height {
		lines = lines[:body.Height]
	}
	for i, line := range lines {
		if st.plain {
			line = st.body.Render(fit(ansi.Strip(line), body.Width))
		} else {
			line = ansi.Truncate(line, body.Width, "")
		}
		c.drawOn(body.X, body.Y+i, line, st.body)
	}
}

// titleBar is the plain title row: glyph and title on the left, the
// window controls on the right when there is room for them.
func titleBar(w wm.Window, width int) string {
	a := apps.Lookup(w.Kind)
	label := " " + a.Glyph + " " + w.Title
	if width < minControlsWidth {
		return fit(label, width)
	}
	maxGlyph := "□"
	if w.Maximized {
		maxGlyph = "❐"
	}
	controls := " ─ " + " " + maxGlyph + " " + " ✕ "
	return fit(label, width-3*controlWidth) + controls
}

func (m *Model) drawTaskbar(c *canvas) {
	bar := m.taskbarRect()
	c.fill(bar, m.theme.taskbar)
	mid := bar.Y + (bar.Height-1)/2

	start := m.startButtonRect()
	startStyle := m.theme.accent
	if m.bar.Start.Visible() {
		startStyle = startStyle.Background(m.theme.taskActive.GetBackground())
		c.fill(start, startStyle)
	}
	c.drawOn(start.X, mid, startStyle.Render(center("⊞", start.Width)), startStyle)

	for _, s := range m.taskSlots() {
		m.drawTaskButton(c, s, mid)
	}

	m.drawMoveHint(c, mid)

	clock, date := taskbar.Clock(m.clock)
	tray := geom.Rect{X: max(m.width-trayWidth, 0), Y: bar.Y, Width: min(trayWidth, m.width), Height: bar.Height}
	if bar.Height >= 2 {
		c.drawOn(tray.X, mid, m.theme.taskbar.Render(center(clock, tray.Width)), m.theme.taskbar)
		c.drawOn(tray.X, mid+1, m.theme.taskbar.Render(center(date, tray.Width)), m.theme.taskbar)
	} else {
		c.drawOn(tray.X, mid, m.theme.taskbar.Render(center(clock, tray.Width)), m.theme.taskbar)
	}
}

// drawMoveHint shows the move mode keys between the task buttons and the
// tray.
func (m *Model) drawMoveHint(c *canvas, row int) {
	var hint string
	switch m.move.Phase() {
	case movemode.PhaseSelecting:
		hint = "MOVE  arrows select  enter grab  esc exit"
	case movemode.PhaseGrabbed:
		hint = "MOVE  arrows move  shift+arrows resize  enter drop  esc cancel"
	default:
		return
	}
	x := startButtonWidth + len(m.taskSlots())*taskButtonWidth + 2
	width := m.width - trayWidth - x - 1
	if width <= 0 {
		return
	}
	c.drawOn(x, row, m.theme.accent.Render(ansi.Truncate(hint, width, "…")), m.theme.taskbar)
}

func (m *Model) drawTaskButton(c *canvas, s taskSlot, mid int) {
	base := m.theme.taskbar
	if s.button.Active {
		base = m.theme.taskActive
		c.fill(s.rect, base)
	}
	glyph := apps.Lookup(s.button.Kind).Icon(apps.IconSmall).String()
	pad := max((s.rect.Width-1)/2, 0)
	c.drawOn(s.rect.X+pad, mid, glyph, base)

	if !s.button.Open {
		return
	}
	mark := "──"
	if s.button.Active {
		mark = "────"
	}
	ind := m.theme.indicator.Background(base.GetBackground())
	row := s.rect.Bottom() - 1
	if s.rect.Height < 2 {
		row = mid
		mark = "•"
		c.drawOn(s.rect.Right()-1, row, ind.Render(mark), ind)
		return
	}
	c.drawOn(s.rect.X+(s.rect.Width-lipgloss.Width(mark))/2, row, ind.Render(mark), ind)
}

func (m *Model) drawThumbnails(c *canvas) {
	slots := m.thumbSlots()
	if len(slots) == 0 {
		return
	}
	active := m.mgr.ActiveID()
	for _, s := range slots {
		border := lipgloss.RoundedBorder()
		color := lipgloss.Color(m.theme.src.Title)
		if s.window.ID == active {
			color = lipgloss.Color(m.theme.src.Accent)
		}
		inner := s.rect.Width - 2
		lines := []string{fit(apps.Lookup(s.window.Kind).Glyph+" "+s.window.Title, inner-3)}
		if p, ok := m.panes[s.window.ID]; ok {
			for i, line := range strings.Split(p.View(), "\n") {
				if i >= s.rect.Height-3 {
					break
				}
				lines = append(lines, fit(ansi.Strip(line), inner))
			}
		}
		box := m.theme.menu.
			Border(border).
			BorderForeground(color).
			BorderBackground(m.theme.menu.GetBackground()).
			Width(inner).
			Height(s.rect.Height - 2).
			Render(strings.Join(lines, "\n"))
		c.drawOn(s.rect.X, s.rect.Y, box, m.theme.menu)
		c.drawOn(s.close.X, s.close.Y, m.theme.menu.Render(" ✕ "), m.theme.menu)
	}
}

func (m *Model) drawStartMenu(c *canvas) {
	if !m.bar.Start.Visible() {
		return
	}
	r := m.startMenuRect()
	st := m.theme.menu
	c.fill(r, st)
	c.drawOn(r.X, r.Y, " "+ansi.Truncate(m.search.View(), r.Width-2, ""), st)
	sep := st.Render(strings.Repeat("─", r.Width))
	c.drawOn(r.X, r.Y+1, sep, st)

	entries := m.bar.Start.Entries()
	if len(entries) == 0 {
		c.drawOn(r.X, r.Y+2, m.theme.muted.Render(fit(" No results", r.Width)), st)
	}
	for i, k := range entries {
		line := " " + apps.Lookup(k).Icon(apps.IconMedium).String()
		base := st
		if i == 0 && m.bar.Start.Query() != "" {
			base = m.theme.menuItem
			c.fill(geom.Rect{X: r.X, Y: r.Y + 2 + i, Width: r.Width, Height: 1}, base)
		}
		c.drawOn(r.X, r.Y+2+i, ansi.Truncate(line, r.Width, ""), base)
	}

	c.drawOn(r.X, r.Bottom()-2, sep, st)
	user := fit(" ◉ "+m.session.User(), max(r.Width-signOutWidth, 0))
	c.drawOn(r.X, r.Bottom()-1, st.Render(user)+st.Render(fit("⏻ Sign out", signOutWidth)), st)
}

func (m *Model) drawContextMenu(c *canvas) {
	menu := m.desk.Menu()
	if !menu.Visible {
		return
	}
	r := m.contextMenuRect()
	for i, item := range menu.Items {
		c.drawOn(r.X, r.Y+i, m.theme.menu.Render(fit("  "+item.String(), r.Width)), m.theme.menu)
	}
}

func center(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return fit(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
