package panes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// Palette is the fixed set of swatches shown in the ribbon.
var Palette = []string{"#000000", "#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF", "#FFFFFF"}

const (
	paintBackground = "#FFFFFF"
	paintRibbonH    = 2
	swatchWidth     = 3
	MinBrush        = 1
	MaxBrush        = 5
)

// Paint is a cell canvas. Each cell holds a hex color.
type Paint struct {
	canvas  [][]string
	color   string
	brush   int
	drawing bool
	last    geom.Point
	size    geom.Size
}

func NewPaint() *Paint {
	return &Paint{color: Palette[0], brush: MinBrush}
}

func (p *Paint) Kind() apps.Kind { return apps.Paint }
func (p *Paint) Focus() {}
func (p *Paint) Blur() {}

// SetSize grows the canvas to the content area, keeping what was drawn.
func (p *Paint) SetSize(s geom.Size) {
	p.size = s
	w, h := max(s.Width, 1), max(s.Height-paintRibbonH, 1)
	for len(p.canvas) < h {
		p.canvas = append(p.canvas, nil)
	}
	for y := range p.canvas {
		for len(p.canvas[y]) < w {
			p.canvas[y] = append(p.canvas[y], paintBackground)
		}
	}
}

// Color returns the current color.
func (p *Paint) Color() string { return p.color }

// Brush returns the current brush size.
func (p *Paint) Brush() int { return p.brush }

// SetColor selects a color given as #rrggbb.
func (p *Paint) SetColor(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", hex, err)
	}
	p.color = strings.ToUpper(c.Hex())
	return nil
}

// SetBrush clamps and sets the brush size.
func (p *Paint) SetBrush(n int) {
	p.brush = min(max(n, MinBrush), MaxBrush)
}

// Clear fills the canvas with the background.
func (p *Paint) Clear() {
	for y := range p.canvas {
		for x := range p.canvas[y] {
			p.canvas[y][x] = paintBackground
		}
	}
}

// At returns the color of a canvas cell.
func (p *Paint) At(x, y int) (string, bool) {
	if y < 0 || y >= len(p.canvas) || x < 0 || x >= len(p.canvas[y]) {
		return "", false
	}
	return p.canvas[y][x], true
}

func (p *Paint) stamp(c geom.Point) {
	r := p.brush - 1
	for y := c.Y - r; y <= c.Y+r; y++ {
		for x := c.X - r; x <= c.X+r; x++ {
			if _, ok := p.At(x, y); ok {
				p.canvas[y][x] = p.color
			}
		}
	}
}

// line stamps every cell from a to b.
func (p *Paint) line(a, b geom.Point) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	for {
		p.stamp(a)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (p *Paint) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "1", "2", "3", "4", "5", "6", "7", "8":
			p.color = Palette[k[0]-'1']
		case "[", "-":
			p.SetBrush(p.brush - 1)
		case "]", "+":
			p.SetBrush(p.brush + 1)
		case "c":
			p.Clear()
		}
	case Mouse:
		p.handleMouse(msg)
	}
	return nil
}

func (p *Paint) handleMouse(m Mouse) {
	switch m.Action {
	case tea.MouseActionRelease:
		p.drawing = false
		return
	case tea.MouseActionMotion:
		if !p.drawing {
			return
		}
		cell := geom.Point{X: m.X, Y: m.Y - paintRibbonH}
		p.line(p.last, cell)
		p.last = cell
		return
	}
	if !m.Press() {
		return
	}
	if m.Y == 0 {
		p.ribbonClick(m.X)
		return
	}
	if m.Y < paintRibbonH {
		return
	}
	cell := geom.Point{X: m.X, Y: m.Y - paintRibbonH}
	p.drawing = true
	p.last = cell
	p.stamp(cell)
}

// ribbon layout: swatches, then " - n + ", then " Clear ".
func (p *Paint) ribbonClick(x int) {
	if i := x / swatchWidth; i < len(Palette) {
		p.color = Palette[i]
		return
	}
	rel := x - len(Palette)*swatchWidth
	switch {
	case rel >= 1 && rel <= 3:
		p.SetBrush(p.brush - 1)
	case rel >= 5 && rel <= 7:
		p.SetBrush(p.brush + 1)
	case rel >= 8 && rel < 15:
		p.Clear()
	}
}

func (p *Paint) View() string {
	var ribbon strings.Builder
	for _, c := range Palette {
		mark := "   "
		if c == p.color {
			mark = " ● "
		}
		fg := "#000000"
		if c == "#000000" || c == "#0000FF" {
			fg = "#FFFFFF"
		}
		ribbon.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(c)).
			Foreground(lipgloss.Color(fg)).
			Render(mark))
	}
	ribbon.WriteString(fmt.Sprintf("  - %d + ", p.brush))
	ribbon.WriteString(lipgloss.NewStyle().Reverse(true).Render(" Clear "))

	w, h := max(p.size.Width, 1), max(p.size.Height-paintRibbonH, 1)
	lines := []string{ribbon.String(), strings.Repeat("─", w)}
	for _, row := range p.canvas[:min(len(p.canvas), h)] {
		lines = append(lines, renderRow(row[:min(len(row), w)]))
	}
	return strings.Join(lines, "\n")
}

// renderRow draws runs of equal color with one style each.
func renderRow(row []string) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && row[j] == row[i] {
			j++
		}
		b.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(row[i])).
			Render(strings.Repeat(" ", j-i)))
		i = j
	}
	return b.String()
}
