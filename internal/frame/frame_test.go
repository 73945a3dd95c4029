package frame

import (
	"testing"
	"time"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/wm"
)

type pending struct {
	d  time.Duration
	fn func()
}

type fakeScheduler struct{ queue []pending }

func (s *fakeScheduler) After(d time.Duration, fn func()) {
	s.queue = append(s.queue, pending{d: d, fn: fn})
}

func (s *fakeScheduler) runAll() {
	q := s.queue
	s.queue = nil
	for _, p := range q {
		p.fn()
	}
}

func setup(t *testing.T) (*wm.Manager, *Controller, *fakeScheduler) {
	t.Helper()
	m := wm.NewManager(wm.WithCascade(geom.Point{X: 10, Y: 5}, 3))
	s := &fakeScheduler{}
	c := New(m, s, Options{
		CloseDelay: 200 * time.Millisecond,
		Transition: 200 * time.Millisecond,
		MinSize:    geom.Size{Width: 20, Height: 6},
	})
	m.Subscribe(c.HandleEvent)
	return m, c, s
}

func TestOpeningClearsOnNextFrame(t *testing.T) {
	m, c, _ := setup(t)
	id := m.Open(apps.Editor)
	if c.Phase(id) != PhaseOpening {
		t.Fatalf("phase = %v, want opening", c.Phase(id))
	}
	c.AdvanceFrame()
	if c.Phase(id) != PhaseOpen {
		t.Fatalf("phase = %v, want open", c.Phase(id))
	}
}

func TestDrag_FollowsPointerMinusOffset(t *testing.T) {
	m, c, _ := setup(t)
	a := m.Open(apps.Explorer)
	b := m.Open(apps.Editor)

	// Grab a's title 4 cells right of its origin (10,5).
	c.TitlePointerDown(a, geom.Point{X: 14, Y: 5})
	if m.ActiveID() != a {
		t.Fatalf("pointer down should focus")
	}
	if st, id := c.Gesture(); st != DragDragging || id != a {
		t.Fatalf("gesture = %v %q", st, id)
	}
	if c.Transition(a) != 0 {
		t.Fatalf("dragging window should not ease")
	}
	if c.Transition(b) == 0 {
		t.Fatalf("other windows keep their easing")
	}

	c.PointerMove(geom.Point{X: 2, Y: -3})
	w, _ := m.Get(a)
	if w.Position != (geom.Point{X: -2, Y: -3}) {
		t.Fatalf("position = %+v (no clamping expected)", w.Position)
	}

	c.PointerUp()
	c.PointerMove(geom.Point{X: 50, Y: 50})
	w, _ = m.Get(a)
	if w.Position != (geom.Point{X: -2, Y: -3}) {
		t.Fatalf("move after pointer up changed position to %+v", w.Position)
	}
}

func TestDrag_MaximizedWindowOnlyFocuses(t *testing.T) {
	m, c, _ := setup(t)
	a := m.Open(apps.Explorer)
	m.ToggleMaximize(a)
	m.Open(apps.Editor)

	c.TitlePointerDown(a, geom.Point{X: 3, Y: 0})
	if m.ActiveID() != a {
		t.Fatalf("maximized window should still focus")
	}
	if st, _ := c.Gesture(); st != DragIdle {
		t.Fatalf("maximized window should not drag, got %v", st)
	}
}

func TestResize_ClampsToMinimum(t *testing.T) {
	m, c, _ := setup(t)
	a := m.Open(apps.Editor)
	before, _ := m.Get(a)
	grip := geom.Point{X: before.Bounds().Right() - 1, Y: before.Bounds().Bottom() - 1}

	c.ResizePointerDown(a, grip)
	c.PointerMove(geom.Point{X: grip.X + 5, Y: grip.Y + 2})
	w, _ := m.Get(a)
	if w.Size != (geom.Size{Width: before.Size.Width + 5, Height: before.Size.Height + 2}) {
		t.Fatalf("size = %+v", w.Size)
	}

	c.PointerMove(geom.Point{X: -100, Y: -100})
	w, _ = m.Get(a)
	if w.Size != (geom.Size{Width: 20, Height: 6}) {
		t.Fatalf("size = %+v, want clamped 20x6", w.Size)
	}
	if w.Position != before.Position {
		t.Fatalf("resize moved the window")
	}
}

func TestTitleDoubleClick_TogglesMaximize(t *testing.T) {
	m, c, _ := setup(t)
	a := m.Open(apps.Paint)
	c.TitleDoubleClick(a)
	w, _ := m.Get(a)
	if !w.Maximized {
		t.Fatalf("expected maximized")
	}
	c.TitleDoubleClick(a)
	w, _ = m.Get(a)
	if w.Maximized {
		t.Fatalf("expected restored")
	}
}

func TestControls(t *testing.T) {
	m, c, _ := setup(t)
	a := m.Open(apps.Paint)
	c.Maximize(a)
	c.Minimize(a)
	w, _ := m.Get(a)
	if !w.Minimized || !w.Maximized {
		t.Fatalf("window = %+v", w)
	}
	if st, _ := c.Gesture(); st != DragIdle {
		t.Fatalf("controls must not start a drag")
	}
}

func TestClose_DeferredAndIdempotent(t *testing.T) {
	m, c, s := setup(t)
	a := m.Open(apps.Calculator)
	b := m.Open(apps.Calculator)

	c.Close(a)
	c.Close(a)
	if len(s.queue) != 1 {
		t.Fatalf("expected one scheduled removal, got %d", len(s.queue))
	}
	if s.queue[0].d != 200*time.Millisecond {
		t.Fatalf("delay = %v", s.queue[0].d)
	}
	if _, ok := m.Get(a); !ok {
		t.Fatalf("window removed before the delay elapsed")
	}
	if c.Interactive(a) {
		t.Fatalf("closing window should not be interactive")
	}

	// Input during the delay is ignored.
	c.TitlePointerDown(a, geom.Point{X: 11, Y: 5})
	c.Minimize(a)
	if w, _ := m.Get(a); w.Minimized {
		t.Fatalf("closing window accepted minimize")
	}

	// Someone else removes it first; the timer must still be harmless.
	m.Close(a)
	s.runAll()
	if m.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", m.Len())
	}
	if _, ok := m.Get(b); !ok {
		t.Fatalf("wrong window removed")
	}
	c.FinishClose(a)
	if m.Len() != 1 {
		t.Fatalf("repeated finish removed another window")
	}
}

func TestClose_EndsDragOwnedByWindow(t *testing.T) {
	m, c, s := setup(t)
	a := m.Open(apps.Explorer)
	c.TitlePointerDown(a, geom.Point{X: 12, Y: 5})
	c.Close(a)
	s.runAll()
	if st, _ := c.Gesture(); st != DragIdle {
		t.Fatalf("gesture survived close: %v", st)
	}
	c.PointerMove(geom.Point{X: 1, Y: 1})
	if m.Len() != 0 {
		t.Fatalf("expected empty manager")
	}
}

func TestUnmount_EndsDragWhenClosedElsewhere(t *testing.T) {
	m, c, _ := setup(t)
	a := m.Open(apps.Explorer)
	c.TitlePointerDown(a, geom.Point{X: 12, Y: 5})
	m.Close(a)
	if st, _ := c.Gesture(); st != DragIdle {
		t.Fatalf("gesture survived unmount: %v", st)
	}
}

func TestFade(t *testing.T) {
	now := time.Unix(100, 0)
	m := wm.NewManager()
	s := &fakeScheduler{}
	c := New(m, s, Options{CloseDelay: 200 * time.Millisecond, Now: func() time.Time { return now }})
	m.Subscribe(c.HandleEvent)
	a := m.Open(apps.Browser)
	c.AdvanceFrame()
	if c.Fade(a) != 0 {
		t.Fatalf("open window should be opaque")
	}
	c.Close(a)
	now = now.Add(100 * time.Millisecond)
	if f := c.Fade(a); f < 0.49 || f > 0.51 {
		t.Fatalf("fade halfway = %v", f)
	}
	now = now.Add(time.Second)
	if c.Fade(a) != 1 {
		t.Fatalf("fade should clamp at 1")
	}
}
