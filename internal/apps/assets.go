package apps

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// IconSize selects how large an icon is drawn.
type IconSize int

const (
	// IconSmall is a single cell glyph, used by title bars and the taskbar.
	IconSmall IconSize = iota
	// IconMedium is the glyph plus a short label, used by the start menu.
	IconMedium
	// IconLarge is the desktop icon: a boxed glyph above the title.
	IconLarge
)

// Drawable is an opaque rendered icon. Callers may measure and print it but
// should not depend on its internal form.
type Drawable struct {
	block string
}

// String returns the printable block.
func (d Drawable) String() string { return d.block }

// Width returns the block width in cells.
func (d Drawable) Width() int { return lipgloss.Width(d.block) }

// Height returns the block height in lines.
func (d Drawable) Height() int { return lipgloss.Height(d.block) }

// Renderable is implemented by anything that can draw itself as an icon at a
// requested size.
type Renderable interface {
	Icon(size IconSize) Drawable
}

// Asset is the immutable presentation record for one app kind.
type Asset struct {
	Kind  Kind
	Title string
	Glyph string
	Color lipgloss.Color
	// Narrow marks kinds that open with the narrow default window size.
	Narrow bool
}

var assets = map[Kind]Asset{
	Explorer:   {Kind: Explorer, Title: "File Explorer", Glyph: "▤", Color: lipgloss.Color("220")},
	Editor:     {Kind: Editor, Title: "Text Editor", Glyph: "✎", Color: lipgloss.Color("33")},
	Paint:      {Kind: Paint, Title: "Paint", Glyph: "✿", Color: lipgloss.Color("205")},
	Calculator: {Kind: Calculator, Title: "Calculator", Glyph: "▦", Color: lipgloss.Color("245"), Narrow: true},
	Browser:    {Kind: Browser, Title: "Web Browser", Glyph: "◍", Color: lipgloss.Color("42")},
}

// Lookup returns the asset for k. It panics on kinds outside the closed set.
func Lookup(k Kind) Asset {
	a, ok := assets[k.MustValid()]
	if !ok {
		panic("apps: missing asset for " + k.String())
	}
	return a
}

// Title is shorthand for Lookup(k).Title.
func Title(k Kind) string { return Lookup(k).Title }

// Icon draws the asset at the requested size.
func (a Asset) Icon(size IconSize) Drawable {
	glyph := lipgloss.NewStyle().Foreground(a.Color).Bold(true).Render(a.Glyph)
	switch size {
	case IconSmall:
		return Drawable{block: glyph}
	case IconMedium:
		return Drawable{block: glyph + " " + a.Title}
	case IconLarge:
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(a.Color).
			Padding(0, 1).
			Render(glyph)
		label := a.Title
		if lipgloss.Width(label) > IconCellWidth {
			label = truncateLabel(label, IconCellWidth)
		}
		return Drawable{block: lipgloss.JoinVertical(lipgloss.Center, box, label)}
	default:
		return Drawable{block: glyph}
	}
}

// IconCellWidth is the width reserved for one desktop icon.
const IconCellWidth = 12

// IconCellHeight is the height reserved for one desktop icon.
const IconCellHeight = 4

func truncateLabel(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return strings.TrimSpace(string(runes[:width-1])) + "…"
}

var _ Renderable = Asset{}
