package wm

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
	"github.com/1broseidon/termdesk/internal/layout"
)

// Default cascade and sizing used when no options override them.
var (
	DefaultOrigin = geom.Point{X: 16, Y: 2}
	DefaultStep   = 3
)

// DefaultSize gives narrow kinds a 30x18 window and everything else 64x20.
func DefaultSize(k apps.Kind) geom.Size {
	if apps.Lookup(k).Narrow {
		return geom.Size{Width: 30, Height: 18}
	}
	return geom.Size{Width: 64, Height: 20}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used for window ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithCascade sets where the first window opens and how far each following
// window is shifted.
func WithCascade(origin geom.Point, step int) Option {
	return func(m *Manager) {
		m.origin = origin
		m.step = step
	}
}

// WithSizer sets the default window size per kind.
func WithSizer(size func(apps.Kind) geom.Size) Option {
	return func(m *Manager) { m.size = size }
}

// WithZStart sets the first z value handed out.
func WithZStart(start int64) Option {
	return func(m *Manager) { m.z = NewSequence(start) }
}

// Manager owns every open window. All methods are safe for concurrent use;
// every operation on an id that is not present is a silent no-op.
type Manager struct {
	mu       sync.Mutex
	windows  map[ID]*Window
	order    []ID
	activeID ID

	z   *Sequence
	ids *Sequence

	now    func() time.Time
	origin geom.Point
	step   int
	size   func(apps.Kind) geom.Size

	listenMu  sync.Mutex
	listeners map[int]Listener
	nextLsn   int
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		windows:   make(map[ID]*Window),
		z:         NewSequence(1),
		ids:       NewSequence(1),
		now:       time.Now,
		origin:    DefaultOrigin,
		step:      DefaultStep,
		size:      DefaultSize,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.listenMu.Lock()
	id := m.nextLsn
	m.nextLsn++
	m.listeners[id] = l
	m.listenMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.listenMu.Lock()
			delete(m.listeners, id)
			m.listenMu.Unlock()
		})
	}
}

func (m *Manager) emit(ev Event) {
	m.listenMu.Lock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, m.listeners[id])
	}
	m.listenMu.Unlock()

	for _, l := range ls {
		l(ev)
	}
}

// SetCascade changes the cascade for windows opened from now on.
func (m *Manager) SetCascade(origin geom.Point, step int) {
	m.mu.Lock()
	m.origin = origin
	m.step = step
	m.mu.Unlock()
}

// SetSizer changes the default size for windows opened from now on.
func (m *Manager) SetSizer(size func(apps.Kind) geom.Size) {
	m.mu.Lock()
	m.size = size
	m.mu.Unlock()
}

// Open creates a window for kind, puts it in front and makes it active.
func (m *Manager) Open(kind apps.Kind) ID {
	kind.MustValid()

	m.mu.Lock()
	id := ID(fmt.Sprintf("%s-%d-%d", kind, m.now().UnixMilli(), m.ids.Next()))
	w := &Window{
		ID:       id,
		Kind:     kind,
		Title:    apps.Title(kind),
		Position: layout.Cascade(m.origin, m.step, len(m.windows)),
		Size:     m.size(kind),
		Z:        int(m.z.Next()),
	}
	m.windows[id] = w
	m.order = append(m.order, id)
	m.activeID = id
	ev := Event{Kind: EventOpened, Window: *w, Active: m.activeID}
	m.mu.Unlock()

	m.emit(ev)
	return id
}

// Close removes the window. Closing the active window leaves no window
// active; nothing else is promoted.
func (m *Manager) Close(id ID) {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.windows, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.activeID == id {
		m.activeID = ""
	}
	ev := Event{Kind: EventClosed, Window: *w, Active: m.activeID}
	m.mu.Unlock()

	m.emit(ev)
}

// Focus restores a minimized window, raises it above every other window and
// makes it active.
func (m *Manager) Focus(id ID) {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	w.Minimized = false
	w.Z = int(m.z.Next())
	m.activeID = id
	ev := Event{Kind: EventFocused, Window: *w, Active: m.activeID}
	m.mu.Unlock()

	m.emit(ev)
}

// Update merges p into the window. Minimizing the active window through a
// patch clears the active reference as Minimize does.
func (m *Manager) Update(id ID, p Patch) {
	m.mu.Lock()
	ev, ok := m.updateLocked(id, p, EventUpdated)
	m.mu.Unlock()

	if ok {
		m.emit(ev)
	}
}

func (m *Manager) updateLocked(id ID, p Patch, kind EventKind) (Event, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Event{}, false
	}
	p.apply(w)
	if w.Minimized && m.activeID == id {
		m.activeID = ""
	}
	return Event{Kind: kind, Window: *w, Active: m.activeID}, true
}

// Minimize hides the window, keeping its geometry and z.
func (m *Manager) Minimize(id ID) {
	m.mu.Lock()
	ev, ok := m.updateLocked(id, Patch{Minimized: Bool(true)}, EventMinimized)
	m.mu.Unlock()

	if ok {
		m.emit(ev)
	}
}

// ToggleMaximize flips the maximized flag. Stacking and focus are unchanged.
func (m *Manager) ToggleMaximize(id ID) {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	ev, _ := m.updateLocked(id, Patch{Maximized: Bool(!w.Maximized)}, EventMaximized)
	m.mu.Unlock()

	m.emit(ev)
}

// Move sets the restored position. It does not raise the window.
func (m *Manager) Move(id ID, x, y int) {
	m.Update(id, Patch{Position: &geom.Point{X: x, Y: y}})
}

// Resize sets the restored size. It does not raise the window.
func (m *Manager) Resize(id ID, width, height int) {
	m.Update(id, Patch{Size: &geom.Size{Width: width, Height: height}})
}

// Get returns a snapshot of the window.
func (m *Manager) Get(id ID) (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns every window in the order they were opened.
func (m *Manager) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.windows[id])
	}
	return out
}

// Stacked returns the visible windows back to front.
func (m *Manager) Stacked() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Window, 0, len(m.order))
	for _, id := range m.order {
		if w := m.windows[id]; w.Visible() {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// ActiveID returns the active window id, or "" when none is active.
func (m *Manager) ActiveID() ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Len returns the number of windows, minimized ones included.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// TopZ returns the last z value issued.
func (m *Manager) TopZ() int {
	return int(m.z.Last())
}
