// Package panes holds the hosted applications. Each pane is self-contained:
// the window manager only mounts it, routes input to it and draws it inside
// a window's content area.
package panes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// Pane is one hosted application instance.
type Pane interface {
	Kind() apps.Kind
	// SetSize tells the pane how large its content area is.
	SetSize(s geom.Size)
	Focus()
	Blur()
	// Update handles key presses, Mouse events in pane coordinates and the
	// pane's own messages. Unrelated messages must be ignored.
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Mouse is a pointer event translated to the pane's content area.
type Mouse struct {
	geom.Point
	Action tea.MouseAction
	Button tea.MouseButton
	// Clicks is 2 for the second press of a double-click.
	Clicks int
}

// Press reports a left-button press.
func (m Mouse) Press() bool {
	return m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft
}

// New creates the pane for kind. Kinds outside the closed set are a
// programming error and panic.
func New(kind apps.Kind) Pane {
	switch kind {
	case apps.Explorer:
		return NewExplorer(nil)
	case apps.Editor:
		return NewEditor()
	case apps.Paint:
		return NewPaint()
	case apps.Calculator:
		return NewCalculator()
	case apps.Browser:
		return NewBrowser()
	default:
		panic("panes: no pane for " + kind.String())
	}
}

// Init returns the start-up command of panes that animate on their own.
func Init(p Pane) tea.Cmd {
	if i, ok := p.(interface{ Init() tea.Cmd }); ok {
		return i.Init()
	}
	return nil
}
