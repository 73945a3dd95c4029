package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/termdesk/internal/config"
)

// frameInterval paces transitions while something is animating.
const frameInterval = 33 * time.Millisecond

type (
	// scheduledMsg runs a deferred callback on the update goroutine.
	scheduledMsg struct{ fn func() }
	// frameMsg is one animation frame.
	frameMsg time.Time
	// clockMsg refreshes the tray and lock screen clocks.
	clockMsg time.Time
	// reloadMsg carries a config file change.
	reloadMsg config.Reload
)

// tickScheduler implements frame.Scheduler with tea.Tick. Callbacks queued
// during an Update are handed back to bubbletea as commands and run later
// inside Update, so they never race the model.
type tickScheduler struct {
	pending []tea.Cmd
}

func (s *tickScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return scheduledMsg{fn: fn}
	}))
}

func (s *tickScheduler) drain() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func clockTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// waitReload delivers the next config reload. It returns nil once the
// watcher is closed.
func waitReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}
