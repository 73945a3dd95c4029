package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/session"
)

const signInFormWidth = 30

var (
	lockClockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	lockDateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("253"))
	lockHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)
	avatarStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("255")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 2)
	userStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
)

// bigDigits is a three row font for the lock screen clock.
var bigDigits = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {" ▀█", "  █", "  ▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {" ", "▪", "▪"},
}

func bigText(s string) string {
	var rows [3][]string
	for _, r := range s {
		g, ok := bigDigits[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Join(r, " ")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) wake() {
	m.session.Wake()
	m.tracer.Session(session.StateLocked.String(), session.StateSignIn.String(), "")
}

// signInInit builds the sign-in prompt and returns its start-up command.
func (m *Model) signInInit() tea.Cmd {
	if m.session.State() != session.StateSignIn {
		return nil
	}
	m.signInOK = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("signin").
				Affirmative("Sign in").
				Negative("Cancel").
				Value(&m.signInOK),
		),
	).WithShowHelp(false).WithWidth(signInFormWidth)
	return m.form.Init()
}

func (m *Model) updateSignIn(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		return nil
	}
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		if m.signInOK {
			m.completeSignIn()
		} else {
			m.cancelSignIn()
		}
		return nil
	case huh.StateAborted:
		m.cancelSignIn()
		return nil
	}
	return cmd
}

func (m *Model) completeSignIn() {
	m.form = nil
	if m.session.SignIn() {
		m.tracer.Session(session.StateSignIn.String(), session.StateUnlocked.String(), m.session.ID())
	}
}

func (m *Model) cancelSignIn() {
	m.form = nil
	m.session.Cancel()
	m.tracer.Session(session.StateSignIn.String(), session.StateLocked.String(), "")
}

// signOut returns to the lock screen. Windows stay open for the next
// session.
func (m *Model) signOut() {
	if m.session.State() != session.StateUnlocked {
		return
	}
	id := m.session.ID()
	m.bar.Start.Close()
	m.bar.Leave()
	m.desk.CloseMenu()
	m.frames.PointerUp()
	m.move.Reset()
	m.pressed = false
	m.session.Lock()
	m.tracer.Session(session.StateUnlocked.String(), session.StateLocked.String(), id)
}

// signInLayout returns the prompt above the buttons, the form and where
// the form lands on screen.
func (m *Model) signInLayout() (head, form string, at geom.Rect) {
	head = lipgloss.JoinVertical(lipgloss.Center,
		avatarStyle.Render("◉"),
		"",
		userStyle.Render(m.session.User()),
		"",
	)
	if m.form != nil {
		form = m.form.View()
	}
	hw, hh := lipgloss.Size(head)
	fw, fh := lipgloss.Size(form)
	bw, bh := max(hw, fw), hh+fh
	x0 := max((m.width-bw)/2, 0)
	y0 := max((m.height-bh)/2, 0)
	at = geom.Rect{X: x0 + (bw-fw)/2, Y: y0 + hh, Width: fw, Height: fh}
	return head, form, at
}

// clickSignIn maps a click on the prompt's buttons: the left half signs
// in, the right half cancels.
func (m *Model) clickSignIn(p geom.Point) {
	_, _, at := m.signInLayout()
	if !at.Contains(p) {
		return
	}
	if p.X < at.X+at.Width/2 {
		m.completeSignIn()
	} else {
		m.cancelSignIn()
	}
}

func (m *Model) lockView() string {
	var block string
	switch m.session.State() {
	case session.StateSignIn:
		head, form, _ := m.signInLayout()
		block = lipgloss.JoinVertical(lipgloss.Center, head, form)
	default:
		block = lipgloss.JoinVertical(lipgloss.Center,
			lockClockStyle.Render(bigText(m.clock.Format("15:04"))),
			"",
			lockDateStyle.Render(m.clock.Format("Monday, January 2")),
			"",
			"",
			lockHintStyle.Render("Click or press any key to unlock"),
		)
	}
	c := newCanvas(m.width, m.height, m.theme.desktop)
	bw, bh := lipgloss.Size(block)
	c.drawOn(max((m.width-bw)/2, 0), max((m.height-bh)/2, 0), block, m.theme.desktop)
	return c.String()
}
