// Package geom holds the integer geometry shared by the window manager and
// the interaction controllers. Units are desktop cells.
package geom

// Point is a position in desktop-relative coordinates.
type Point struct {
	X int
	Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Rect represents a window or icon position and size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectAt builds a rect from an origin and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// FromCorners returns the normalized rect spanned by two corner points,
// regardless of which corner was given first.
func FromCorners(a, b Point) Rect {
	left, right := a.X, b.X
	if right < left {
		left, right = right, left
	}
	top, bottom := a.Y, b.Y
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Dims returns the width and height.
func (r Rect) Dims() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Empty reports whether the rect has zero area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so adjacent cells never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Overlaps reports whether r and o share any point, edges included.
// Rects are disjoint only when one lies strictly to one side of the other
// on some axis, so a zero-area rect touching o still overlaps it.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() < o.X ||
		r.X > o.Right() ||
		r.Bottom() < o.Y ||
		r.Y > o.Bottom())
}
