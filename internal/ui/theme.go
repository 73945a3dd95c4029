package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/termdesk/internal/config"
)

// theme holds the styles derived from the config theme.
type theme struct {
	src config.Theme

	desktop     lipgloss.Style
	window      lipgloss.Style
	border      lipgloss.Style
	title       lipgloss.Style
	activeTitle lipgloss.Style
	taskbar     lipgloss.Style
	taskActive  lipgloss.Style
	indicator   lipgloss.Style
	selection   lipgloss.Style
	selected    lipgloss.Style
	menu        lipgloss.Style
	menuItem    lipgloss.Style
	muted       lipgloss.Style
	accent      lipgloss.Style
	highlight   lipgloss.Style
}

func newTheme(t config.Theme) theme {
	text := lipgloss.Color("235")
	return theme{
		src:         t,
		desktop:     lipgloss.NewStyle().Background(lipgloss.Color(t.Desktop)).Foreground(lipgloss.Color("255")),
		window:      lipgloss.NewStyle().Background(lipgloss.Color(t.Window)).Foreground(text),
		border:      lipgloss.NewStyle().Background(lipgloss.Color(t.Window)).Foreground(lipgloss.Color(t.Title)),
		title:       lipgloss.NewStyle().Background(lipgloss.Color(t.Title)).Foreground(text),
		activeTitle: lipgloss.NewStyle().Background(lipgloss.Color(t.ActiveTitle)).Foreground(text).Bold(true),
		taskbar:     lipgloss.NewStyle().Background(lipgloss.Color(t.Taskbar)).Foreground(text),
		taskActive:  lipgloss.NewStyle().Background(lipgloss.Color(t.Window)).Foreground(text),
		indicator:   lipgloss.NewStyle().Background(lipgloss.Color(t.Taskbar)).Foreground(lipgloss.Color(t.Accent)),
		selection:   lipgloss.NewStyle().Background(lipgloss.Color(t.Desktop)).Foreground(lipgloss.Color(t.Selection)),
		selected:    lipgloss.NewStyle().Background(lipgloss.Color(t.Selection)).Foreground(lipgloss.Color("255")),
		menu:        lipgloss.NewStyle().Background(lipgloss.Color(t.Window)).Foreground(text),
		menuItem:    lipgloss.NewStyle().Background(lipgloss.Color(t.Accent)).Foreground(lipgloss.Color("255")),
		muted:       lipgloss.NewStyle().Background(lipgloss.Color(t.Window)).Foreground(lipgloss.Color("245")),
		accent:      lipgloss.NewStyle().Background(lipgloss.Color(t.Taskbar)).Foreground(lipgloss.Color(t.Accent)).Bold(true),
		highlight:   lipgloss.NewStyle().Background(lipgloss.Color(t.Window)).Foreground(lipgloss.Color(t.Accent)).Bold(true),
	}
}

// faded returns the style a window is drawn with while it fades: its colors
// blended toward the desktop by amount (0 opaque, 1 gone).
func (t theme) faded(amount float64) lipgloss.Style {
	desk := parseColor(t.src.Desktop)
	bg := parseColor(t.src.Window).BlendLab(desk, amount).Clamped()
	fg := parseColor("235").BlendLab(desk, amount).Clamped()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(fg.Hex()))
}

// ansi16 is the xterm palette for indexes 0-15.
var ansi16 = [16]string{
	"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

// parseColor converts a lipgloss color string (#rrggbb or an xterm-256
// index) to RGB. Unparseable values map to black.
func parseColor(s string) colorful.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}
		}
		return c
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return colorful.Color{}
	}
	switch {
	case n < 16:
		c, _ := colorful.Hex(ansi16[n])
		return c
	case n < 232:
		n -= 16
		level := func(v int) float64 {
			if v == 0 {
				return 0
			}
			return float64(55+v*40) / 255
		}
		return colorful.Color{R: level(n / 36), G: level(n / 6 % 6), B: level(n % 6)}
	default:
		v := float64(8+(n-232)*10) / 255
		return colorful.Color{R: v, G: v, B: v}
	}
}
