// Package taskbar derives taskbar buttons, hover previews and the start menu
// from the window manager state and turns clicks into manager commands.
package taskbar

import (
	"time"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/wm"
)

// Manager is the part of the window manager the taskbar reads and drives.
type Manager interface {
	Windows() []wm.Window
	ActiveID() wm.ID
	Open(k apps.Kind) wm.ID
	Focus(id wm.ID)
	Close(id wm.ID)
}

// Button is one taskbar entry.
type Button struct {
	Kind   apps.Kind
	Title  string
	Pinned bool
	// Open is true when at least one window of the kind exists.
	Open bool
	// Active is true when the active window is of this kind and visible.
	Active bool
	// Windows lists the kind's windows in the order they were opened.
	Windows []wm.ID
}

// Buttons lists pinned kinds first, in pinned order, followed by any other
// kind that has open windows, in order of first appearance.
func Buttons(pinned []apps.Kind, windows []wm.Window, active wm.ID) []Button {
	byKind := make(map[apps.Kind]*Button)
	var out []*Button
	add := func(k apps.Kind, isPinned bool) *Button {
		if b, ok := byKind[k]; ok {
			return b
		}
		b := &Button{Kind: k, Title: apps.Title(k), Pinned: isPinned}
		byKind[k] = b
		out = append(out, b)
		return b
	}
	for _, k := range pinned {
		add(k, true)
	}
	for _, w := range windows {
		b := add(w.Kind, false)
		b.Open = true
		b.Windows = append(b.Windows, w.ID)
		if w.ID == active && !w.Minimized {
			b.Active = true
		}
	}

	buttons := make([]Button, len(out))
	for i, b := range out {
		buttons[i] = *b
	}
	return buttons
}

// Taskbar holds the hover preview and start menu state.
type Taskbar struct {
	mgr    Manager
	pinned []apps.Kind
	closer func(wm.ID)

	preview     apps.Kind
	previewOpen bool

	Start *StartMenu
}

// New creates a taskbar. lock is invoked when the user signs out.
func New(mgr Manager, pinned []apps.Kind, lock func()) *Taskbar {
	t := &Taskbar{
		mgr:    mgr,
		pinned: append([]apps.Kind(nil), pinned...),
		closer: mgr.Close,
	}
	t.Start = newStartMenu(mgr, lock)
	return t
}

// SetPinned replaces the pinned kinds.
func (t *Taskbar) SetPinned(pinned []apps.Kind) {
	t.pinned = append([]apps.Kind(nil), pinned...)
}

// SetCloser routes thumbnail close buttons, e.g. through the animated
// frame close instead of immediate removal.
func (t *Taskbar) SetCloser(fn func(wm.ID)) {
	if fn == nil {
		fn = t.mgr.Close
	}
	t.closer = fn
}

// Buttons returns the current taskbar entries.
func (t *Taskbar) Buttons() []Button {
	return Buttons(t.pinned, t.mgr.Windows(), t.mgr.ActiveID())
}

func (t *Taskbar) button(k apps.Kind) (Button, bool) {
	for _, b := range t.Buttons() {
		if b.Kind == k {
			return b, true
		}
	}
	return Button{}, false
}

// Click opens the kind if it has no window, otherwise focuses its active
// window, or the one opened last when none of them is active.
func (t *Taskbar) Click(k apps.Kind) wm.ID {
	t.Leave()
	b, ok := t.button(k)
	if !ok || !b.Open {
		return t.mgr.Open(k)
	}
	target := b.Windows[len(b.Windows)-1]
	active := t.mgr.ActiveID()
	for _, id := range b.Windows {
		if id == active {
			target = id
			break
		}
	}
	t.mgr.Focus(target)
	return target
}

// Hover shows the thumbnail preview for k when it has open windows.
func (t *Taskbar) Hover(k apps.Kind) {
	b, ok := t.button(k)
	if !ok || !b.Open {
		t.Leave()
		return
	}
	t.preview = k
	t.previewOpen = true
}

// Leave hides the preview.
func (t *Taskbar) Leave() {
	t.previewOpen = false
}

// Preview returns the windows shown as thumbnails, if a preview is open.
func (t *Taskbar) Preview() (apps.Kind, []wm.Window, bool) {
	if !t.previewOpen {
		return 0, nil, false
	}
	var ws []wm.Window
	for _, w := range t.mgr.Windows() {
		if w.Kind == t.preview {
			ws = append(ws, w)
		}
	}
	if len(ws) == 0 {
		t.previewOpen = false
		return 0, nil, false
	}
	return t.preview, ws, true
}

// ClickThumbnail focuses the window and hides the preview.
func (t *Taskbar) ClickThumbnail(id wm.ID) {
	t.mgr.Focus(id)
	t.Leave()
}

// CloseThumbnail closes the window behind a thumbnail. The preview stays
// open while the kind has other windows.
func (t *Taskbar) CloseThumbnail(id wm.ID) {
	t.closer(id)
}

// Clock formats the tray clock.
func Clock(now time.Time) (clock, date string) {
	return now.Format("15:04"), now.Format("1/2/2006")
}
