package session

import (
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSession_Flow(t *testing.T) {
	s := New("Administrator", quietLogger())
	unlocked := 0
	s.OnUnlocked(func() { unlocked++ })

	if s.State() != StateLocked {
		t.Fatalf("new session should be locked")
	}
	if s.SignIn() {
		t.Fatalf("sign in from the lock screen should be refused")
	}

	s.Wake()
	if s.State() != StateSignIn {
		t.Fatalf("state = %v", s.State())
	}
	if !s.SignIn() || s.State() != StateUnlocked || unlocked != 1 {
		t.Fatalf("sign in failed: state=%v unlocked=%d", s.State(), unlocked)
	}
	first := s.ID()
	if first == "" {
		t.Fatalf("unlocked session should have an id")
	}

	s.Lock()
	if s.State() != StateLocked || s.ID() != "" {
		t.Fatalf("lock should clear the session")
	}

	s.Wake()
	s.SignIn()
	if unlocked != 2 {
		t.Fatalf("OnUnlocked should fire on every unlock, got %d", unlocked)
	}
	if s.ID() == first {
		t.Fatalf("session id reused")
	}
}

func TestSession_CancelReturnsToLock(t *testing.T) {
	s := New("guest", quietLogger())
	s.Wake()
	s.Cancel()
	if s.State() != StateLocked {
		t.Fatalf("state = %v", s.State())
	}
	s.Cancel()
	if s.State() != StateLocked {
		t.Fatalf("cancel while locked changed state")
	}
}

func TestState_String(t *testing.T) {
	if StateSignIn.String() != "sign-in" || State(9).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}
