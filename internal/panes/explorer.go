package panes

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/fsmock"
	"github.com/1broseidon/termdesk/internal/geom"
)

// EmptyFolderText is shown for folders without entries.
const EmptyFolderText = "This folder is empty."

// explorerHeader is the toolbar line plus the separator below it.
const explorerHeader = 2

type fileItem struct{ node *fsmock.Node }

func (i fileItem) FilterValue() string { return i.node.Name }

type fileDelegate struct{}

func (fileDelegate) Height() int { return 1 }
func (fileDelegate) Spacing() int { return 0 }
func (fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

var (
	explorerSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33"))
	explorerFolder   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	explorerMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	explorerPath     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("254"))
)

func (fileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(fileItem)
	if !ok {
		return
	}
	glyph := explorerMuted.Render("▯")
	detail := humanize.Bytes(uint64(fi.node.ByteSize()))
	if fi.node.IsFolder() {
		glyph = explorerFolder.Render("▰")
		detail = fmt.Sprintf("%d items", len(fi.node.Children))
	}
	name := fi.node.Name
	width := m.Width()
	pad := width - lipgloss.Width(name) - lipgloss.Width(detail) - 4
	if pad < 1 {
		pad = 1
	}
	line := " " + name + strings.Repeat(" ", pad) + detail + " "
	if index == m.Index() {
		fmt.Fprint(w, glyph+explorerSelected.Render(line))
		return
	}
	fmt.Fprint(w, glyph+line)
}

// Explorer browses the mock file tree.
type Explorer struct {
	path []*fsmock.Node
	list list.Model
	size geom.Size
}

// NewExplorer opens root, or the built-in tree when root is nil.
func NewExplorer(root *fsmock.Node) *Explorer {
	if root == nil {
		root = fsmock.Default()
	}
	l := list.New(nil, fileDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	e := &Explorer{path: []*fsmock.Node{root}, list: l}
	e.refresh()
	return e
}

func (e *Explorer) Kind() apps.Kind { return apps.Explorer }
func (e *Explorer) Focus() {}
func (e *Explorer) Blur() {}

func (e *Explorer) SetSize(s geom.Size) {
	e.size = s
	e.list.SetSize(max(s.Width, 1), max(s.Height-explorerHeader, 1))
}

// Current returns the folder being shown.
func (e *Explorer) Current() *fsmock.Node {
	return e.path[len(e.path)-1]
}

// Breadcrumb joins the folder names from the root.
func (e *Explorer) Breadcrumb() string {
	names := make([]string, len(e.path))
	for i, n := range e.path {
		names[i] = n.Name
	}
	return strings.Join(names, " > ")
}

// CanGoUp reports whether there is a parent folder.
func (e *Explorer) CanGoUp() bool { return len(e.path) > 1 }

// Up returns to the parent folder.
func (e *Explorer) Up() {
	if !e.CanGoUp() {
		return
	}
	e.path = e.path[:len(e.path)-1]
	e.refresh()
}

// Open enters the named child folder. Files are not opened.
func (e *Explorer) Open(name string) bool {
	child, ok := e.Current().Child(name)
	if !ok || !child.IsFolder() {
		return false
	}
	e.path = append(e.path, child)
	e.refresh()
	return true
}

// Selected returns the highlighted entry.
func (e *Explorer) Selected() (*fsmock.Node, bool) {
	fi, ok := e.list.SelectedItem().(fileItem)
	if !ok {
		return nil, false
	}
	return fi.node, true
}

func (e *Explorer) refresh() {
	children := e.Current().Children
	items := make([]list.Item, len(children))
	for i, c := range children {
		items[i] = fileItem{node: c}
	}
	e.list.SetItems(items)
	e.list.Select(0)
}

func (e *Explorer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "right", "l":
			if n, ok := e.Selected(); ok {
				e.Open(n.Name)
			}
			return nil
		case "backspace", "left", "h":
			e.Up()
			return nil
		}
		var cmd tea.Cmd
		e.list, cmd = e.list.Update(msg)
		return cmd
	case Mouse:
		if !msg.Press() {
			return nil
		}
		if msg.Y == 0 && msg.X < 3 {
			e.Up()
			return nil
		}
		row := msg.Y - explorerHeader
		if row < 0 {
			return nil
		}
		idx := e.list.Paginator.Page*e.list.Paginator.PerPage + row
		if idx >= len(e.list.Items()) {
			return nil
		}
		e.list.Select(idx)
		if msg.Clicks >= 2 {
			if n, ok := e.Selected(); ok {
				e.Open(n.Name)
			}
		}
	}
	return nil
}

func (e *Explorer) View() string {
	w := max(e.size.Width, 10)
	up := " ↑ "
	if !e.CanGoUp() {
		up = explorerMuted.Render(up)
	}
	crumb := e.Breadcrumb()
	if r := []rune(crumb); len(r) > w-4 {
		crumb = "…" + string(r[len(r)-(w-5):])
	}
	toolbar := up + explorerPath.Width(w-lipgloss.Width(up)).Render(" "+crumb)
	sep := explorerMuted.Render(strings.Repeat("─", w))

	var body string
	if len(e.Current().Children) == 0 {
		body = lipgloss.Place(w, max(e.size.Height-explorerHeader, 1), lipgloss.Center, lipgloss.Top,
			"\n"+explorerMuted.Render(EmptyFolderText))
	} else {
		body = e.list.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, toolbar, sep, body)
}
