package desktop

import "github.com/1broseidon/termdesk/internal/geom"

// MenuItem is an entry of the desktop context menu.
type MenuItem int

const (
	MenuRefresh MenuItem = iota
	MenuPersonalize
	MenuDisplaySettings
)

func (m MenuItem) String() string {
	switch m {
	case MenuRefresh:
		return "Refresh"
	case MenuPersonalize:
		return "Personalize"
	case MenuDisplaySettings:
		return "Display settings"
	default:
		return "unknown"
	}
}

// DefaultMenuItems lists the context menu entries top to bottom.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{MenuRefresh, MenuPersonalize, MenuDisplaySettings}
}

// ContextMenu is the background right-click menu.
type ContextMenu struct {
	Visible bool
	At      geom.Point
	Items   []MenuItem
}

func (m *ContextMenu) show(p geom.Point) {
	m.Visible = true
	m.At = p
	m.Items = DefaultMenuItems()
}

func (m *ContextMenu) hide() {
	m.Visible = false
}
