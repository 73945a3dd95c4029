package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// Style is a text formatting command.
type Style string

const (
	StyleBold      Style = "bold"
	StyleItalic    Style = "italic"
	StyleUnderline Style = "underline"
)

var editorStyles = []Style{StyleBold, StyleItalic, StyleUnderline}

// editorToolbarH is the style buttons plus the separator below them.
const editorToolbarH = 2

var (
	editorButton = lipgloss.NewStyle().Padding(0, 1)
	editorActive = editorButton.Background(lipgloss.Color("153"))
	editorStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("254"))
)

// Editor is a plain text editor with document-wide formatting toggles.
type Editor struct {
	area   textarea.Model
	styles map[Style]bool
	size   geom.Size
}

func NewEditor() *Editor {
	ta := textarea.New()
	ta.Placeholder = "Start typing here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	return &Editor{area: ta, styles: make(map[Style]bool)}
}

func (e *Editor) Kind() apps.Kind { return apps.Editor }

func (e *Editor) SetSize(s geom.Size) {
	e.size = s
	e.area.SetWidth(max(s.Width, 1))
	e.area.SetHeight(max(s.Height-editorToolbarH-1, 1))
}

func (e *Editor) Focus() { e.area.Focus() }
func (e *Editor) Blur() { e.area.Blur() }

// ApplyStyle toggles a formatting command.
func (e *Editor) ApplyStyle(s Style) {
	e.styles[s] = !e.styles[s]
}

// Styled reports whether s is switched on.
func (e *Editor) Styled(s Style) bool { return e.styles[s] }

// PlainText returns the document without formatting.
func (e *Editor) PlainText() string { return e.area.Value() }

// SetText replaces the document.
func (e *Editor) SetText(s string) { e.area.SetValue(s) }

// WordCount counts whitespace separated words.
func (e *Editor) WordCount() int {
	return len(strings.Fields(e.area.Value()))
}

func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+b":
			e.ApplyStyle(StyleBold)
			return nil
		case "ctrl+t":
			e.ApplyStyle(StyleItalic)
			return nil
		case "ctrl+u":
			e.ApplyStyle(StyleUnderline)
			return nil
		}
	case Mouse:
		if msg.Press() && msg.Y == 0 {
			x := 0
			for _, s := range editorStyles {
				w := lipgloss.Width(editorButton.Render(styleLabel(s)))
				if msg.X >= x && msg.X < x+w {
					e.ApplyStyle(s)
					return nil
				}
				x += w
			}
		}
		return nil
	}
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return cmd
}

func styleLabel(s Style) string {
	switch s {
	case StyleBold:
		return "B"
	case StyleItalic:
		return "I"
	case StyleUnderline:
		return "U"
	default:
		return "?"
	}
}

func (e *Editor) View() string {
	w := max(e.size.Width, 10)
	var buttons []string
	for _, s := range editorStyles {
		st := editorButton
		if e.styles[s] {
			st = editorActive
		}
		label := lipgloss.NewStyle().
			Bold(s == StyleBold).
			Italic(s == StyleItalic).
			Underline(s == StyleUnderline).
			Render(styleLabel(s))
		buttons = append(buttons, st.Render(label))
	}
	toolbar := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	sep := strings.Repeat("─", w)

	body := lipgloss.NewStyle().
		Bold(e.styles[StyleBold]).
		Italic(e.styles[StyleItalic]).
		Underline(e.styles[StyleUnderline]).
		Render(e.area.View())

	words := fmt.Sprintf("%d words", e.WordCount())
	gap := max(w-len("UTF-8")-lipgloss.Width(words)-2, 1)
	status := editorStatus.Width(w).Render(" UTF-8" + strings.Repeat(" ", gap) + words + " ")

	return lipgloss.JoinVertical(lipgloss.Left, toolbar, sep, body, status)
}
