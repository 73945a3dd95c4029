// Package session is the lock screen state in front of the desktop.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the lock state of the session
type State int

const (
	// StateLocked shows the lock screen with the clock
	StateLocked State = iota
	// StateSignIn shows the account and sign-in prompt
	StateSignIn
	// StateUnlocked shows the desktop
	StateUnlocked
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateSignIn:
		return "sign-in"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Session tracks the lock state. Each unlock starts a new session id.
type Session struct {
	mu         sync.Mutex
	state      State
	user       string
	id         string
	onUnlocked []func()
	logger     *slog.Logger
}

// New creates a locked session for user.
func New(user string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{user: user, logger: logger}
}

// OnUnlocked registers fn to run every time the session unlocks.
func (s *Session) OnUnlocked(fn func()) {
	s.mu.Lock()
	s.onUnlocked = append(s.onUnlocked, fn)
	s.mu.Unlock()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the account name shown on the sign-in screen.
func (s *Session) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser changes the account name.
func (s *Session) SetUser(user string) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// ID returns the id of the current unlocked session, or "" while locked.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Wake moves from the lock screen to the sign-in prompt.
func (s *Session) Wake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLocked {
		s.state = StateSignIn
	}
}

// SignIn unlocks the desktop and fires the OnUnlocked callbacks. It only
// works from the sign-in prompt.
func (s *Session) SignIn() bool {
	s.mu.Lock()
	if s.state != StateSignIn {
		s.mu.Unlock()
		return false
	}
	s.state = StateUnlocked
	s.id = uuid.NewString()
	fns := append([]func(){}, s.onUnlocked...)
	id, user := s.id, s.user
	s.mu.Unlock()

	s.logger.Info("session unlocked", "user", user, "session", id)
	for _, fn := range fns {
		fn()
	}
	return true
}

// Cancel returns from the sign-in prompt to the lock screen.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSignIn {
		s.state = StateLocked
	}
}

// Lock signs out. Open windows are left to the caller.
func (s *Session) Lock() {
	s.mu.Lock()
	prev := s.id
	s.state = StateLocked
	s.id = ""
	s.mu.Unlock()

	if prev != "" {
		s.logger.Info("session locked", "session", prev)
	}
}
