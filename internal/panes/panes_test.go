package panes

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

func press(c *Calculator, labels ...string) {
	for _, l := range labels {
		c.Press(l)
	}
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{name: "initial", labels: nil, want: "0"},
		{name: "leading zero replaced", labels: []string{"0", "7"}, want: "7"},
		{name: "simple add", labels: []string{"2", "+", "3", "="}, want: "5"},
		{name: "left to right", labels: []string{"2", "+", "3", OpMul, "4", "="}, want: "20"},
		{name: "subtract negative", labels: []string{"3", OpSub, "5", "="}, want: "-2"},
		{name: "decimal", labels: []string{"1", ".", "5", "+", "1", "="}, want: "2.5"},
		{name: "single decimal point", labels: []string{"1", ".", ".", "5"}, want: "1.5"},
		{name: "fresh decimal", labels: []string{"4", "+", "."}, want: "0."},
		{name: "divide by zero", labels: []string{"1", OpDiv, "0", "="}, want: "Infinity"},
		{name: "zero by zero", labels: []string{"0", OpDiv, "0", "="}, want: "NaN"},
		{name: "repeated operator", labels: []string{"5", "+", "+", "3", "="}, want: "8"},
		{name: "operator replaced", labels: []string{"5", "+", OpMul, "3", "="}, want: "15"},
		{name: "equal without op", labels: []string{"9", "="}, want: "9"},
		{name: "chain after equal", labels: []string{"2", "+", "2", "=", OpMul, "3", "="}, want: "12"},
		{name: "digit after equal", labels: []string{"2", "+", "2", "=", "7"}, want: "7"},
		{name: "clear", labels: []string{"9", "+", "1", "C"}, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCalculator()
			press(c, tt.labels...)
			if got := c.Display(); got != tt.want {
				t.Fatalf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculatorClearDropsPending(t *testing.T) {
	c := NewCalculator()
	press(c, "9", "+", "C", "2", "=")
	if got := c.Display(); got != "2" {
		t.Fatalf("Display() = %q, want 2", got)
	}
}

func TestCalculatorKeypadMouse(t *testing.T) {
	c := NewCalculator()
	c.SetSize(geom.Size{Width: 20, Height: 12})
	// 10 keypad rows, two per key row; 5 columns per key.
	click := func(col, row int) {
		c.Update(Mouse{
			Point:  geom.Point{X: col*5 + 1, Y: calcHeader + row*2},
			Action: tea.MouseActionPress,
			Button: tea.MouseButtonLeft,
		})
	}
	click(0, 1) // 7
	click(3, 3) // +
	click(1, 3) // 2
	click(3, 4) // =
	if got := c.Display(); got != "9" {
		t.Fatalf("Display() = %q, want 9", got)
	}
	click(0, 0) // C
	if got := c.Display(); got != "0" {
		t.Fatalf("Display() after C = %q, want 0", got)
	}
}

func TestExplorerNavigation(t *testing.T) {
	e := NewExplorer(nil)
	e.SetSize(geom.Size{Width: 40, Height: 12})

	if e.CanGoUp() {
		t.Fatalf("CanGoUp() at root = true")
	}
	if got := e.Breadcrumb(); got != "This PC" {
		t.Fatalf("Breadcrumb() = %q", got)
	}
	if !e.Open("Documents") {
		t.Fatalf("Open(Documents) = false")
	}
	if got := e.Breadcrumb(); got != "This PC > Documents" {
		t.Fatalf("Breadcrumb() = %q", got)
	}
	if e.Open("Resume.rtf") {
		t.Fatalf("Open(file) = true, want false")
	}
	if e.Open("Missing") {
		t.Fatalf("Open(missing) = true, want false")
	}
	e.Up()
	if got := e.Current().Name; got != "This PC" {
		t.Fatalf("Current() after Up = %q", got)
	}
	e.Up()
	if got := e.Current().Name; got != "This PC" {
		t.Fatalf("Up at root moved to %q", got)
	}
}

func TestExplorerEmptyFolder(t *testing.T) {
	e := NewExplorer(nil)
	e.SetSize(geom.Size{Width: 40, Height: 12})
	if !e.Open("Downloads") {
		t.Fatalf("Open(Downloads) = false")
	}
	if !strings.Contains(e.View(), EmptyFolderText) {
		t.Fatalf("View() missing %q", EmptyFolderText)
	}
	if _, ok := e.Selected(); ok {
		t.Fatalf("Selected() in empty folder = ok")
	}
}

func TestExplorerDoubleClickOpens(t *testing.T) {
	e := NewExplorer(nil)
	e.SetSize(geom.Size{Width: 40, Height: 12})
	row := Mouse{
		Point:  geom.Point{X: 5, Y: explorerHeader + 1},
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
		Clicks: 1,
	}
	e.Update(row)
	n, ok := e.Selected()
	if !ok || n.Name != "Pictures" {
		t.Fatalf("Selected() = %v, %v; want Pictures", n, ok)
	}
	if e.CanGoUp() {
		t.Fatalf("single click opened the folder")
	}
	row.Clicks = 2
	e.Update(row)
	if got := e.Breadcrumb(); got != "This PC > Pictures" {
		t.Fatalf("Breadcrumb() after double-click = %q", got)
	}

	e.Update(Mouse{Point: geom.Point{X: 1, Y: 0}, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if e.CanGoUp() {
		t.Fatalf("up button did not return to root")
	}
}

func TestEditorWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "   ", want: 0},
		{text: "hello", want: 1},
		{text: "hello  world", want: 2},
		{text: "one\ntwo\tthree", want: 3},
	}
	for _, tt := range tests {
		e := NewEditor()
		e.SetText(tt.text)
		if got := e.WordCount(); got != tt.want {
			t.Fatalf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestEditorStyles(t *testing.T) {
	e := NewEditor()
	e.SetSize(geom.Size{Width: 40, Height: 10})
	e.Focus()

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if !e.Styled(StyleBold) {
		t.Fatalf("ctrl+b did not enable bold")
	}
	e.ApplyStyle(StyleBold)
	if e.Styled(StyleBold) {
		t.Fatalf("second toggle left bold on")
	}

	// The toolbar renders " B ", " I ", " U ".
	e.Update(Mouse{Point: geom.Point{X: 4, Y: 0}, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !e.Styled(StyleItalic) {
		t.Fatalf("toolbar click did not enable italic")
	}
	if e.Styled(StyleUnderline) {
		t.Fatalf("underline toggled unexpectedly")
	}
	if !strings.Contains(e.View(), "0 words") {
		t.Fatalf("status bar missing word count")
	}
}

func TestPaintStampAndClear(t *testing.T) {
	p := NewPaint()
	p.SetSize(geom.Size{Width: 10, Height: 10})

	p.Update(Mouse{Point: geom.Point{X: 4, Y: 4 + paintRibbonH}, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, _ := p.At(4, 4); got != Palette[0] {
		t.Fatalf("At(4,4) = %q, want %q", got, Palette[0])
	}
	if got, _ := p.At(5, 4); got != paintBackground {
		t.Fatalf("brush 1 painted a neighbour: %q", got)
	}
	p.Update(Mouse{Point: geom.Point{X: 7, Y: 4 + paintRibbonH}, Action: tea.MouseActionMotion})
	if got, _ := p.At(6, 4); got != Palette[0] {
		t.Fatalf("drag did not fill the gap: %q", got)
	}
	p.Update(Mouse{Point: geom.Point{X: 7, Y: 4 + paintRibbonH}, Action: tea.MouseActionRelease})
	p.Update(Mouse{Point: geom.Point{X: 0, Y: paintRibbonH}, Action: tea.MouseActionMotion})
	if got, _ := p.At(0, 0); got != paintBackground {
		t.Fatalf("motion after release painted: %q", got)
	}

	p.Clear()
	for _, pt := range []geom.Point{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 7, Y: 4}} {
		if got, _ := p.At(pt.X, pt.Y); got != paintBackground {
			t.Fatalf("At(%v) after Clear = %q", pt, got)
		}
	}
}

func TestPaintBrush(t *testing.T) {
	p := NewPaint()
	p.SetSize(geom.Size{Width: 10, Height: 10})
	for _, tt := range []struct{ in, want int }{{0, MinBrush}, {3, 3}, {9, MaxBrush}, {-4, MinBrush}} {
		p.SetBrush(tt.in)
		if got := p.Brush(); got != tt.want {
			t.Fatalf("SetBrush(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}

	p.SetBrush(2)
	p.Update(Mouse{Point: geom.Point{X: 0, Y: paintRibbonH}, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, _ := p.At(1, 1); got != Palette[0] {
		t.Fatalf("brush 2 did not cover (1,1): %q", got)
	}
	if _, ok := p.At(-1, 0); ok {
		t.Fatalf("At(-1,0) reported ok")
	}
}

func TestPaintColors(t *testing.T) {
	p := NewPaint()
	if err := p.SetColor("#ff0000"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if got := p.Color(); got != "#FF0000" {
		t.Fatalf("Color() = %q", got)
	}
	if err := p.SetColor("red"); err == nil {
		t.Fatalf("SetColor(red) = nil error")
	}

	p.SetSize(geom.Size{Width: 40, Height: 10})
	p.Update(Mouse{Point: geom.Point{X: swatchWidth*3 + 1, Y: 0}, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := p.Color(); got != Palette[3] {
		t.Fatalf("swatch click = %q, want %q", got, Palette[3])
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"example.com", "https://example.com"},
		{"  example.com ", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/a", "https://example.com/a"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBrowserLoading(t *testing.T) {
	b := NewBrowser()
	if !b.Loading() || b.URL() != HomeURL {
		t.Fatalf("new browser: loading=%v url=%q", b.Loading(), b.URL())
	}
	b.Update(loadedMsg{pane: b.id, nav: b.nav})
	if b.Loading() {
		t.Fatalf("still loading after load message")
	}

	stale := loadedMsg{pane: b.id, nav: b.nav}
	if cmd := b.Navigate("example.com"); cmd == nil {
		t.Fatalf("Navigate returned nil command")
	}
	if b.URL() != "https://example.com" || !b.Loading() {
		t.Fatalf("after Navigate: url=%q loading=%v", b.URL(), b.Loading())
	}
	b.Update(stale)
	if !b.Loading() {
		t.Fatalf("stale load message finished the new navigation")
	}

	other := NewBrowser()
	b.Update(loadedMsg{pane: other.id, nav: b.nav})
	if !b.Loading() {
		t.Fatalf("another browser's message finished this one")
	}
}

func TestNewPanicsOnUnknownKind(t *testing.T) {
	for _, k := range apps.All() {
		if p := New(k); p.Kind() != k {
			t.Fatalf("New(%v).Kind() = %v", k, p.Kind())
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("New(unknown) did not panic")
		}
	}()
	New(apps.Kind(99))
}
