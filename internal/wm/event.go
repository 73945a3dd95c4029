package wm

// EventKind describes what a manager operation changed.
type EventKind int

const (
	EventOpened EventKind = iota
	EventClosed
	EventFocused
	EventUpdated
	EventMinimized
	EventMaximized
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventClosed:
		return "closed"
	case EventFocused:
		return "focused"
	case EventUpdated:
		return "updated"
	case EventMinimized:
		return "minimized"
	case EventMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a successful mutation. Operations
// on missing ids produce no event.
type Event struct {
	Kind EventKind
	// Window is the state after the change (before removal for EventClosed).
	Window Window
	// Active is the active id after the change.
	Active ID
}

// Listener receives manager events. It runs on the caller's goroutine after
// the manager lock is released, so it may call back into the manager.
type Listener func(Event)
