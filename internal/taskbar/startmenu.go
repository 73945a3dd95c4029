package taskbar

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/wm"
)

// StartMenu is the visibility-toggled launcher overlay.
type StartMenu struct {
	mgr     Manager
	lock    func()
	visible bool
	query   string
}

func newStartMenu(mgr Manager, lock func()) *StartMenu {
	return &StartMenu{mgr: mgr, lock: lock}
}

// Visible reports whether the menu is shown.
func (s *StartMenu) Visible() bool { return s.visible }

// Toggle shows or hides the menu.
func (s *StartMenu) Toggle() {
	if s.visible {
		s.Close()
		return
	}
	s.visible = true
}

// Close hides the menu and resets the search.
func (s *StartMenu) Close() {
	s.visible = false
	s.query = ""
}

// SetQuery filters the entries.
func (s *StartMenu) SetQuery(q string) { s.query = q }

// Query returns the current filter.
func (s *StartMenu) Query() string { return s.query }

// Entries returns the app kinds to list: all of them without a query,
// otherwise the fuzzy matches on title and id, best first.
func (s *StartMenu) Entries() []apps.Kind {
	all := apps.All()
	q := strings.TrimSpace(s.query)
	if q == "" {
		return all
	}
	data := make([]string, len(all))
	for i, k := range all {
		data[i] = apps.Title(k) + " " + k.String()
	}
	matches := fuzzy.Find(q, data)
	out := make([]apps.Kind, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}

// Launch opens k and hides the menu.
func (s *StartMenu) Launch(k apps.Kind) wm.ID {
	s.Close()
	return s.mgr.Open(k)
}

// SignOut hides the menu and returns to the lock screen.
func (s *StartMenu) SignOut() {
	s.Close()
	if s.lock != nil {
		s.lock()
	}
}
