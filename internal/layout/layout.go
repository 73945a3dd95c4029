// Package layout computes where things sit on the desktop: the icon flow,
// the work area used by maximized windows and the cascade offsets of new
// windows.
package layout

import (
	"fmt"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// Flow arranges icons top to bottom in columns starting at the top-left of
// area, wrapping to the next column when the current one is full.
type Flow struct {
	Cell geom.Size
	Gap  int
}

// DefaultFlow matches the large desktop icon footprint.
func DefaultFlow() Flow {
	return Flow{
		Cell: geom.Size{Width: apps.IconCellWidth, Height: apps.IconCellHeight},
		Gap:  1,
	}
}

// CalculateGrid returns how many icons fit in one column and how many
// columns are needed for count icons.
func (f Flow) CalculateGrid(count int, area geom.Rect) (rows, cols int) {
	if count == 0 {
		return 0, 0
	}
	rows = (area.Height - f.Gap) / (f.Cell.Height + f.Gap)
	if rows < 1 {
		rows = 1
	}
	cols = (count + rows - 1) / rows
	return rows, cols
}

// Positions returns one rect per icon in flow order.
func (f Flow) Positions(count int, area geom.Rect) ([]geom.Rect, error) {
	if count == 0 {
		return nil, nil
	}
	if f.Cell.Width <= 0 || f.Cell.Height <= 0 {
		return nil, fmt.Errorf("invalid icon cell: %dx%d", f.Cell.Width, f.Cell.Height)
	}
	rows, _ := f.CalculateGrid(count, area)

	positions := make([]geom.Rect, count)
	for i := 0; i < count; i++ {
		col := i / rows
		row := i % rows
		positions[i] = geom.Rect{
			X:      area.X + f.Gap + col*(f.Cell.Width+f.Gap),
			Y:      area.Y + f.Gap + row*(f.Cell.Height+f.Gap),
			Width:  f.Cell.Width,
			Height: f.Cell.Height,
		}
	}
	return positions, nil
}

// Icons is the live icon layout of the desktop. It answers "where is this
// icon drawn right now" for hit-testing and rubber-band selection.
type Icons struct {
	flow  Flow
	kinds []apps.Kind
	rects map[apps.Kind]geom.Rect
}

// NewIcons lays out kinds inside area.
func NewIcons(flow Flow, kinds []apps.Kind, area geom.Rect) (*Icons, error) {
	l := &Icons{flow: flow, kinds: append([]apps.Kind(nil), kinds...)}
	if err := l.Reflow(area); err != nil {
		return nil, err
	}
	return l, nil
}

// Reflow recomputes positions after the desktop area changed.
func (l *Icons) Reflow(area geom.Rect) error {
	positions, err := l.flow.Positions(len(l.kinds), area)
	if err != nil {
		return err
	}
	rects := make(map[apps.Kind]geom.Rect, len(l.kinds))
	for i, k := range l.kinds {
		rects[k] = positions[i]
	}
	l.rects = rects
	return nil
}

// Kinds returns the icons in flow order.
func (l *Icons) Kinds() []apps.Kind {
	return append([]apps.Kind(nil), l.kinds...)
}

// Bounds returns the current on-screen box of the icon for k.
func (l *Icons) Bounds(k apps.Kind) (geom.Rect, bool) {
	r, ok := l.rects[k]
	return r, ok
}

// At returns the icon under p, if any.
func (l *Icons) At(p geom.Point) (apps.Kind, bool) {
	for _, k := range l.kinds {
		if l.rects[k].Contains(p) {
			return k, true
		}
	}
	return 0, false
}

// WorkArea is the region a maximized window fills: the whole screen minus
// the taskbar along the bottom edge.
func WorkArea(screen geom.Size, taskbarHeight int) geom.Rect {
	h := screen.Height - taskbarHeight
	if h < 1 {
		h = 1
	}
	w := screen.Width
	if w < 1 {
		w = 1
	}
	return geom.Rect{X: 0, Y: 0, Width: w, Height: h}
}

// Cascade returns the origin of the n-th window (0-based): origin shifted by
// step on both axes for every window already open.
func Cascade(origin geom.Point, step, n int) geom.Point {
	return geom.Point{X: origin.X + step*n, Y: origin.Y + step*n}
}
