package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/termdesk-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestStateDir_UsesXDGStateHome(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)

	got, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error: %v", err)
	}
	if want := filepath.Join(td, "termdesk"); got != want {
		t.Fatalf("StateDir() = %q, want %q", got, want)
	}
}

func TestStateDir_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	got, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir() error: %v", err)
	}
	if want := filepath.Join(home, ".local", "state", "termdesk"); got != want {
		t.Fatalf("StateDir() = %q, want %q", got, want)
	}
}

func TestLogPathAndTracePath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)

	logPath, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath() error: %v", err)
	}
	if want := filepath.Join(td, "termdesk", "termdesk.log"); logPath != want {
		t.Fatalf("LogPath() = %q, want %q", logPath, want)
	}

	tracePath, err := TracePath()
	if err != nil {
		t.Fatalf("TracePath() error: %v", err)
	}
	if want := filepath.Join(td, "termdesk", "termdesk-trace.json"); tracePath != want {
		t.Fatalf("TracePath() = %q, want %q", tracePath, want)
	}
}
