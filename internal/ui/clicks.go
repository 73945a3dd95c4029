package ui

import (
	"time"

	"github.com/1broseidon/termdesk/internal/geom"
)

// clickTracker counts consecutive presses on the same target. The second
// press within the threshold is a double-click; a third starts over.
type clickTracker struct {
	threshold time.Duration

	target string
	at     time.Time
	point  geom.Point
	count  int
}

// press records a press on target and returns the click count (1 or 2).
func (c *clickTracker) press(target string, p geom.Point, now time.Time) int {
	if c.count == 1 && target == c.target && now.Sub(c.at) <= c.threshold && near(p, c.point) {
		c.count = 2
	} else {
		c.count = 1
	}
	c.target = target
	c.at = now
	c.point = p
	if c.count == 2 {
		n := c.count
		c.count = 0
		return n
	}
	return c.count
}

func (c *clickTracker) reset() {
	c.count = 0
	c.target = ""
}

// near allows the pointer to drift one cell along the row between presses.
func near(a, b geom.Point) bool {
	d := a.Sub(b)
	return d.Y == 0 && d.X >= -1 && d.X <= 1
}
