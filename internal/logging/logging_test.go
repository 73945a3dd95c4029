package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWriterFiltersAndFormats(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info")

	l.Debug("hidden")
	l.Info("window opened", "id", "calculator-1-1")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, `msg="window opened"`) || !strings.Contains(out, "id=calculator-1-1") {
		t.Fatalf("unexpected output: %q", out)
	}

	l.SetLevel("debug")
	if l.Level() != slog.LevelDebug {
		t.Fatalf("Level() = %v after SetLevel(debug)", l.Level())
	}
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug record missing after SetLevel")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "termdesk.log")
	l, err := New(Options{Level: "info", File: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Info("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Fatalf("log file = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("log file mode = %v, want 0600", perm)
	}
}

func TestRotatingFileRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termdesk.log")
	r, err := OpenRotating(path, 1, 2)
	if err != nil {
		t.Fatalf("OpenRotating() error: %v", err)
	}
	defer r.Close()

	chunk := bytes.Repeat([]byte("x"), 1024*1024)
	for i := 0; i < 4; i++ {
		if _, err := r.Write(chunk); err != nil {
			t.Fatalf("Write #%d: %v", i, err)
		}
	}

	for _, suffix := range []string{"", ".1", ".2"} {
		if _, err := os.Stat(path + suffix); err != nil {
			t.Fatalf("expected %s%s: %v", path, suffix, err)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("%s.3 should not exist, err=%v", path, err)
	}
}

func TestRotatingFileWriteAfterClose(t *testing.T) {
	r, err := OpenRotating(filepath.Join(t.TempDir(), "a.log"), 0, 0)
	if err != nil {
		t.Fatalf("OpenRotating() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if _, err := fmt.Fprint(r, "late"); err == nil {
		t.Fatalf("Write after Close succeeded")
	}
}
