package movemode

import "github.com/1broseidon/termdesk/internal/geom"

// Direction represents an arrow key direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta is the unit step for d in cells.
func (d Direction) Delta() geom.Point {
	switch d {
	case DirUp:
		return geom.Point{Y: -1}
	case DirDown:
		return geom.Point{Y: 1}
	case DirLeft:
		return geom.Point{X: -1}
	case DirRight:
		return geom.Point{X: 1}
	default:
		return geom.Point{}
	}
}

// NavigateSpatial picks the rect nearest to rects[current] in direction dir,
// by the Manhattan distance between centers. When nothing lies that way it
// wraps to the rect furthest on the opposite side, preferring ones aligned
// with the current rect.
func NavigateSpatial(current int, dir Direction, rects []geom.Rect) int {
	if current < 0 || current >= len(rects) {
		return 0
	}

	cx, cy := center(rects[current])

	best, bestDist := -1, 0
	for i, r := range rects {
		if i == current {
			continue
		}
		x, y := center(r)
		var ahead bool
		switch dir {
		case DirUp:
			ahead = y < cy
		case DirDown:
			ahead = y > cy
		case DirLeft:
			ahead = x < cx
		case DirRight:
			ahead = x > cx
		}
		if !ahead {
			continue
		}
		dist := abs(x-cx) + abs(y-cy)
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 {
		return best
	}

	best, bestScore := -1, 0
	for i, r := range rects {
		if i == current {
			continue
		}
		x, y := center(r)
		var score int
		switch dir {
		case DirUp:
			score = y*10000 - abs(x-cx)
		case DirDown:
			score = -y*10000 - abs(x-cx)
		case DirLeft:
			score = x*10000 - abs(y-cy)
		case DirRight:
			score = -x*10000 - abs(y-cy)
		}
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return best
	}
	return current
}

// Cycle steps through count entries: up and left go back, down and right go
// forward, wrapping at both ends.
func Cycle(current int, dir Direction, count int) int {
	if count <= 1 {
		return 0
	}
	switch dir {
	case DirUp, DirLeft:
		return (current - 1 + count) % count
	case DirDown, DirRight:
		return (current + 1) % count
	}
	return current
}

func center(r geom.Rect) (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
