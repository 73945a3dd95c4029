package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/termdesk/internal/geom"
)

func plainLines(c *canvas) []string {
	return strings.Split(ansi.Strip(c.String()), "\n")
}

func TestCanvasOverlays(t *testing.T) {
	c := newCanvas(8, 3, lipgloss.NewStyle())
	c.draw(0, 0, "aaaaaaaa\naaaaaaaa\naaaaaaaa")
	c.draw(2, 1, "bb\nbb")
	c.draw(6, 2, "cccc")
	c.draw(-1, 0, "zy")

	want := []string{"yaaaaaaa", "aabbaaaa", "aabbaacc"}
	got := plainLines(c)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCanvasRedrawDoesNotGrow(t *testing.T) {
	st := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	c := newCanvas(10, 1, lipgloss.NewStyle())
	c.draw(0, 0, st.Render("hello"))
	first := len(c.String())
	for i := 0; i < 20; i++ {
		c.draw(0, 0, st.Render("hello"))
	}
	if got := len(c.String()); got != first {
		t.Fatalf("output grew from %d to %d bytes", first, got)
	}
}

func TestCanvasWideGraphemes(t *testing.T) {
	c := newCanvas(6, 1, lipgloss.NewStyle())
	c.draw(0, 0, "日本語")
	if got := plainLines(c)[0]; got != "日本語" {
		t.Fatalf("line = %q", got)
	}
	// Covering the trailing half of a wide grapheme blanks its lead.
	c.draw(1, 0, "x")
	if got := plainLines(c)[0]; got != " x本語" {
		t.Fatalf("line = %q, want %q", got, " x本語")
	}
	if w := ansi.StringWidth(plainLines(c)[0]); w != 6 {
		t.Fatalf("width = %d, want 6", w)
	}
}

func TestCanvasFill(t *testing.T) {
	c := newCanvas(4, 2, lipgloss.NewStyle())
	c.draw(0, 0, "abcd\nefgh")
	c.fill(geom.Rect{X: 1, Y: 0, Width: 2, Height: 5}, lipgloss.NewStyle())
	got := plainLines(c)
	if got[0] != "a  d" || got[1] != "e  h" {
		t.Fatalf("lines = %q", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestCenter(t *testing.T) {
	if got := center("ab", 6); got != "  ab  " {
		t.Fatalf("center = %q", got)
	}
	if got := center("abcdef", 3); got != "abc" {
		t.Fatalf("center = %q", got)
	}
}

func TestClickTracker(t *testing.T) {
	base := time.Unix(100, 0)
	c := clickTracker{threshold: 400 * time.Millisecond}

	if n := c.press("a", geom.Point{X: 5, Y: 5}, base); n != 1 {
		t.Fatalf("first press = %d, want 1", n)
	}
	if n := c.press("a", geom.Point{X: 6, Y: 5}, base.Add(100*time.Millisecond)); n != 2 {
		t.Fatalf("second press = %d, want 2", n)
	}
	if n := c.press("a", geom.Point{X: 6, Y: 5}, base.Add(200*time.Millisecond)); n != 1 {
		t.Fatalf("third press = %d, want 1", n)
	}

	tests := []struct {
		name   string
		target string
		p      geom.Point
		after  time.Duration
	}{
		{"other target", "b", geom.Point{X: 6, Y: 5}, 100 * time.Millisecond},
		{"too slow", "a", geom.Point{X: 6, Y: 5}, time.Second},
		{"moved away", "a", geom.Point{X: 9, Y: 5}, 100 * time.Millisecond},
		{"other row", "a", geom.Point{X: 6, Y: 6}, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		c := clickTracker{threshold: 400 * time.Millisecond}
		c.press("a", geom.Point{X: 6, Y: 5}, base)
		if n := c.press(tt.target, tt.p, base.Add(tt.after)); n != 1 {
			t.Errorf("%s: press = %d, want 1", tt.name, n)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#336699", "#336699"},
		{"9", "#ff0000"},
		{"16", "#000000"},
		{"21", "#0000ff"},
		{"231", "#ffffff"},
		{"232", "#080808"},
		{"nope", "#000000"},
		{"300", "#000000"},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in).Hex(); got != tt.want {
			t.Errorf("parseColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestBigText(t *testing.T) {
	got := strings.Split(bigText("12:05"), "\n")
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	w := ansi.StringWidth(got[0])
	for i, row := range got {
		if ansi.StringWidth(row) != w {
			t.Fatalf("row %d width %d, want %d", i, ansi.StringWidth(row), w)
		}
	}
}
