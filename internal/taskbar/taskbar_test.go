package taskbar

import (
	"reflect"
	"testing"
	"time"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/wm"
)

func kinds(bs []Button) []apps.Kind {
	out := make([]apps.Kind, len(bs))
	for i, b := range bs {
		out[i] = b.Kind
	}
	return out
}

func TestButtons_PinnedFirstThenOpen(t *testing.T) {
	windows := []wm.Window{
		{ID: "calc-1", Kind: apps.Calculator},
		{ID: "ed-1", Kind: apps.Editor},
		{ID: "calc-2", Kind: apps.Calculator},
		{ID: "paint-1", Kind: apps.Paint},
	}
	pinned := []apps.Kind{apps.Explorer, apps.Editor}

	bs := Buttons(pinned, windows, "calc-2")
	want := []apps.Kind{apps.Explorer, apps.Editor, apps.Calculator, apps.Paint}
	if got := kinds(bs); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if bs[0].Open || !bs[0].Pinned {
		t.Fatalf("explorer button = %+v", bs[0])
	}
	if !bs[1].Open || bs[1].Active {
		t.Fatalf("editor button = %+v", bs[1])
	}
	calc := bs[2]
	if !calc.Active || calc.Pinned || !reflect.DeepEqual(calc.Windows, []wm.ID{"calc-1", "calc-2"}) {
		t.Fatalf("calculator button = %+v", calc)
	}
}

func TestButtons_MinimizedActiveIsNotHighlighted(t *testing.T) {
	windows := []wm.Window{{ID: "p", Kind: apps.Paint, Minimized: true}}
	bs := Buttons(nil, windows, "p")
	if len(bs) != 1 || bs[0].Active || !bs[0].Open {
		t.Fatalf("buttons = %+v", bs)
	}
}

func TestClick(t *testing.T) {
	m := wm.NewManager()
	tb := New(m, []apps.Kind{apps.Explorer}, nil)

	first := tb.Click(apps.Explorer)
	if m.Len() != 1 || m.ActiveID() != first {
		t.Fatalf("click on closed kind should open")
	}

	second := m.Open(apps.Explorer)
	other := m.Open(apps.Editor)

	// Active window belongs to another kind: focus the last opened one.
	if got := tb.Click(apps.Explorer); got != second {
		t.Fatalf("focused %q, want %q", got, second)
	}

	// The active window of the kind wins over list order.
	m.Focus(first)
	if got := tb.Click(apps.Explorer); got != first {
		t.Fatalf("focused %q, want active %q", got, first)
	}
	if m.Len() != 3 {
		t.Fatalf("clicks on open kinds must not open windows")
	}

	// Minimized windows are restored by the click.
	m.Minimize(other)
	tb.Click(apps.Editor)
	if w, _ := m.Get(other); w.Minimized || m.ActiveID() != other {
		t.Fatalf("click should restore minimized window")
	}
}

func TestHoverPreview(t *testing.T) {
	m := wm.NewManager()
	tb := New(m, []apps.Kind{apps.Paint, apps.Browser}, nil)
	a := m.Open(apps.Paint)
	b := m.Open(apps.Paint)

	tb.Hover(apps.Browser)
	if _, _, ok := tb.Preview(); ok {
		t.Fatalf("kind without windows should not preview")
	}

	tb.Hover(apps.Paint)
	k, ws, ok := tb.Preview()
	if !ok || k != apps.Paint || len(ws) != 2 {
		t.Fatalf("preview = %v %v %v", k, ws, ok)
	}

	tb.CloseThumbnail(b)
	if _, ws, ok := tb.Preview(); !ok || len(ws) != 1 {
		t.Fatalf("preview after closing one thumbnail = %v %v", ws, ok)
	}

	m.Open(apps.Browser)
	tb.ClickThumbnail(a)
	if m.ActiveID() != a {
		t.Fatalf("thumbnail click should focus")
	}
	if _, _, ok := tb.Preview(); ok {
		t.Fatalf("thumbnail click should dismiss the preview")
	}
}

func TestPreviewClosesWhenLastWindowGoes(t *testing.T) {
	m := wm.NewManager()
	tb := New(m, nil, nil)
	id := m.Open(apps.Calculator)
	tb.Hover(apps.Calculator)
	m.Close(id)
	if _, _, ok := tb.Preview(); ok {
		t.Fatalf("preview should close with the last window")
	}
}

func TestSetCloser(t *testing.T) {
	m := wm.NewManager()
	tb := New(m, nil, nil)
	id := m.Open(apps.Editor)
	var routed []wm.ID
	tb.SetCloser(func(id wm.ID) { routed = append(routed, id) })
	tb.CloseThumbnail(id)
	if len(routed) != 1 || m.Len() != 1 {
		t.Fatalf("close should go through the custom closer")
	}
}

func TestStartMenu(t *testing.T) {
	m := wm.NewManager()
	locked := 0
	tb := New(m, nil, func() { locked++ })
	sm := tb.Start

	sm.Toggle()
	if !sm.Visible() {
		t.Fatalf("toggle should show")
	}
	if got := sm.Entries(); len(got) != len(apps.All()) {
		t.Fatalf("entries = %v", got)
	}
	id := sm.Launch(apps.Calculator)
	if sm.Visible() {
		t.Fatalf("launch should hide the menu")
	}
	if w, ok := m.Get(id); !ok || w.Kind != apps.Calculator {
		t.Fatalf("launch did not open calculator")
	}

	sm.Toggle()
	sm.Toggle()
	if sm.Visible() {
		t.Fatalf("second toggle should hide")
	}

	sm.Toggle()
	sm.SignOut()
	if sm.Visible() || locked != 1 {
		t.Fatalf("sign out: visible=%v locked=%d", sm.Visible(), locked)
	}
}

func TestStartMenu_FuzzySearch(t *testing.T) {
	tb := New(wm.NewManager(), nil, nil)
	sm := tb.Start
	sm.Toggle()

	sm.SetQuery("calc")
	got := sm.Entries()
	if len(got) == 0 || got[0] != apps.Calculator {
		t.Fatalf("entries for calc = %v", got)
	}

	sm.SetQuery("zzzz")
	if got := sm.Entries(); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}

	sm.Close()
	if sm.Query() != "" {
		t.Fatalf("close should reset the query")
	}
}

func TestClock(t *testing.T) {
	clock, date := Clock(time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC))
	if clock != "14:05" || date != "3/9/2024" {
		t.Fatalf("clock = %q %q", clock, date)
	}
}
