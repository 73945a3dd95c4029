package panes

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

const (
	// HomeURL is the page a new browser starts on.
	HomeURL = "https://www.google.com"
	// LoadDelay is how long the embedded frame reports loading.
	LoadDelay = 600 * time.Millisecond
)

var browserSeq atomic.Int64

// loadedMsg ends a navigation; only the pane and navigation that issued it
// accept it.
type loadedMsg struct {
	pane int64
	nav  int
}

var (
	browserBar   = lipgloss.NewStyle().Background(lipgloss.Color("254"))
	browserMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	browserTitle = lipgloss.NewStyle().Bold(true)
)

// browserHeader is the address bar plus the separator below it.
const browserHeader = 2

// Browser is a passive embedded frame: it tracks an address and a loading
// state but never fetches anything.
type Browser struct {
	id      int64
	input   textinput.Model
	spin    spinner.Model
	url     string
	nav     int
	loading bool
	size    geom.Size
}

func NewBrowser() *Browser {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Search or enter a URL"
	in.SetValue(HomeURL)
	return &Browser{
		id:      browserSeq.Add(1),
		input:   in,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		url:     HomeURL,
		loading: true,
	}
}

// Init starts the first page load.
func (b *Browser) Init() tea.Cmd {
	return tea.Batch(b.spin.Tick, b.loadCmd())
}

func (b *Browser) Kind() apps.Kind { return apps.Browser }

func (b *Browser) SetSize(s geom.Size) {
	b.size = s
	b.input.Width = max(s.Width-10, 1)
}

func (b *Browser) Focus() { b.input.Focus() }
func (b *Browser) Blur() { b.input.Blur() }

// URL returns the page being shown.
func (b *Browser) URL() string { return b.url }

// Loading reports whether the frame is still loading.
func (b *Browser) Loading() bool { return b.loading }

// NormalizeURL prefixes addresses without a scheme with https://.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

// Navigate goes to addr and starts loading.
func (b *Browser) Navigate(addr string) tea.Cmd {
	b.url = NormalizeURL(addr)
	b.input.SetValue(b.url)
	return b.reload()
}

func (b *Browser) reload() tea.Cmd {
	b.loading = true
	b.nav++
	return tea.Batch(b.spin.Tick, b.loadCmd())
}

func (b *Browser) loadCmd() tea.Cmd {
	msg := loadedMsg{pane: b.id, nav: b.nav}
	return tea.Tick(LoadDelay, func(time.Time) tea.Msg { return msg })
}

func (b *Browser) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.pane == b.id && msg.nav == b.nav {
			b.loading = false
		}
		return nil
	case spinner.TickMsg:
		if !b.loading {
			return nil
		}
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return b.Navigate(b.input.Value())
		case "f5", "ctrl+r":
			return b.reload()
		}
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return cmd
	case Mouse:
		if msg.Press() && msg.Y == 0 && msg.X >= 6 && msg.X < 9 {
			return b.reload()
		}
	}
	return nil
}

func (b *Browser) View() string {
	w := max(b.size.Width, 12)
	h := max(b.size.Height-browserHeader, 1)
	bar := browserBar.Width(w).Render(" ← → ⟳ " + b.input.View())
	sep := strings.Repeat("─", w)

	var content string
	if b.loading {
		content = b.spin.View() + " Loading " + b.url
	} else {
		content = browserTitle.Render(b.url) + "\n\n" +
			browserMuted.Render("This page is shown in a sandboxed frame.\nIf nothing appears, the site blocks embedding.")
	}
	body := lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
	return lipgloss.JoinVertical(lipgloss.Left, bar, sep, body)
}
