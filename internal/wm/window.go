// Package wm owns the collection of open windows: their lifecycle, geometry
// and stacking order.
package wm

import (
	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// ID identifies a window for the lifetime of the process. IDs are never
// reused.
type ID string

// Window is one open instance of a hosted application. Values returned by
// the Manager are snapshots; mutate through Manager methods only.
type Window struct {
	ID    ID
	Kind  apps.Kind
	Title string

	// Position and Size are the restored geometry. They stay untouched while
	// the window is maximized or minimized.
	Position geom.Point
	Size     geom.Size

	// Z orders windows front to back; higher is in front.
	Z int

	Minimized bool
	Maximized bool
}

// Bounds returns the restored geometry as a rect.
func (w Window) Bounds() geom.Rect {
	return geom.RectAt(w.Position, w.Size)
}

// Visible reports whether the window is drawn at all. Minimize takes
// precedence over maximize.
func (w Window) Visible() bool {
	return !w.Minimized
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Position  *geom.Point
	Size      *geom.Size
	Minimized *bool
	Maximized *bool
}

func (p Patch) apply(w *Window) {
	if p.Position != nil {
		w.Position = *p.Position
	}
	if p.Size != nil {
		w.Size = *p.Size
	}
	if p.Minimized != nil {
		w.Minimized = *p.Minimized
	}
	if p.Maximized != nil {
		w.Maximized = *p.Maximized
	}
}

// Bool is a helper for building patches.
func Bool(v bool) *bool { return &v }
