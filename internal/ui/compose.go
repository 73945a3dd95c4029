package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/termdesk/internal/geom"
)

const sgrReset = "\x1b[0m"

// cell is one screen cell. A wide grapheme occupies its lead cell and a
// trailing cell with empty text.
type cell struct {
	style string
	text  string
	wide  bool
}

// canvas is the screen as a cell grid. Blocks drawn later cover earlier
// ones cell by cell.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

// newCanvas returns a canvas of blanks drawn in fill.
func newCanvas(width, height int, fill lipgloss.Style) *canvas {
	prefix := sgrPrefix(fill)
	c := &canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{style: prefix, text: " "}
		}
		c.cells[y] = row
	}
	return c
}

// draw places block with its top-left cell at (x, y), clipping whatever
// falls outside the canvas.
func (c *canvas) draw(x, y int, block string) {
	c.drawOn(x, y, block, lipgloss.NewStyle())
}

// drawOn is draw with base as the style every reset inside block falls back
// to, so nested styles do not punch holes into a container's background.
func (c *canvas) drawOn(x, y int, block string, base lipgloss.Style) {
	prefix := sgrPrefix(base)
	for i, line := range strings.Split(block, "\n") {
		c.drawLine(x, y+i, line, prefix)
	}
}

// sgrPrefix returns the escape sequences st emits before its text.
func sgrPrefix(st lipgloss.Style) string {
	s := st.Render("x")
	if i := strings.Index(s, "x"); i > 0 {
		return s[:i]
	}
	return ""
}

func (c *canvas) drawLine(x, row int, line, base string) {
	if row < 0 || row >= c.height {
		return
	}
	var (
		style = base
		state byte
		col   = x
	)
	for len(line) > 0 && col < c.width {
		seq, width, n, next := ansi.DecodeSequence(line, state, nil)
		state = next
		if n <= 0 {
			break
		}
		line = line[n:]
		if width == 0 {
			if isSGR(seq) {
				if seq == sgrReset || seq == "\x1b[m" {
					style = base
				} else {
					style += seq
				}
			}
			continue
		}
		c.set(col, row, cell{style: style, text: seq, wide: width > 1})
		for i := 1; i < width; i++ {
			c.set(col+i, row, cell{style: style})
		}
		col += width
	}
}

func (c *canvas) set(x, y int, v cell) {
	if x < 0 || x >= c.width {
		return
	}
	row := c.cells[y]
	old := row[x]
	// Breaking a wide grapheme in half leaves a blank in its place.
	if old.wide && x+1 < c.width {
		row[x+1] = cell{style: row[x+1].style, text: " "}
	}
	if old.text == "" && x > 0 && row[x-1].wide {
		row[x-1] = cell{style: row[x-1].style, text: " "}
	}
	row[x] = v
}

// fill paints r with blanks in st.
func (c *canvas) fill(r geom.Rect, st lipgloss.Style) {
	if r.Empty() {
		return
	}
	prefix := sgrPrefix(st)
	for y := max(r.Y, 0); y < min(r.Bottom(), c.height); y++ {
		for x := max(r.X, 0); x < min(r.Right(), c.width); x++ {
			c.set(x, y, cell{style: prefix, text: " "})
		}
	}
}

// fit truncates s to width cells and pads it with spaces to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func isSGR(seq string) bool {
	return strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m")
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		prev := ""
		for x, v := range row {
			if v.style != prev {
				b.WriteString(sgrReset)
				b.WriteString(v.style)
				prev = v.style
			}
			switch {
			case v.text != "":
				b.WriteString(v.text)
			case x == 0 || !row[x-1].wide:
				b.WriteByte(' ')
			}
		}
		if prev != "" {
			b.WriteString(sgrReset)
		}
	}
	return b.String()
}
