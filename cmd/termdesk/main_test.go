package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/1broseidon/termdesk/internal/config"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAppsListsEveryKind(t *testing.T) {
	out, err := runCmd(t, "apps")
	if err != nil {
		t.Fatalf("apps: %v", err)
	}
	for _, want := range []string{"explorer", "editor", "paint", "calculator", "browser", "30x18"} {
		if !strings.Contains(out, want) {
			t.Fatalf("apps output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPathHonorsFlag(t *testing.T) {
	out, err := runCmd(t, "--config", "/tmp/custom.yaml", "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != "/tmp/custom.yaml" {
		t.Fatalf("path = %q", out)
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("username: Ada\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("no_such_key: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "--config", good, "config", "validate")
	if err != nil || !strings.Contains(out, "ok") {
		t.Fatalf("validate good = %q, %v", out, err)
	}
	if _, err := runCmd(t, "--config", bad, "config", "validate"); err == nil {
		t.Fatal("validate accepted an unknown key")
	}
	out, err = runCmd(t, "--config", filepath.Join(dir, "missing.yaml"), "config", "validate")
	if err != nil || !strings.Contains(out, "defaults") {
		t.Fatalf("validate missing = %q, %v", out, err)
	}
}

func TestConfigPrintSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("username: Ada\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCmd(t, "--config", path, "config", "print", "--sources")
	if err != nil {
		t.Fatalf("print --sources: %v", err)
	}
	if !strings.Contains(out, "username") || !strings.Contains(out, ":1:") {
		t.Fatalf("sources output = %q", out)
	}

	out, err = runCmd(t, "config", "print", "--defaults")
	if err != nil {
		t.Fatalf("print --defaults: %v", err)
	}
	if !strings.Contains(out, "username: Administrator") {
		t.Fatalf("defaults output = %q", out)
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "a.yaml", Line: 3, Column: 2}, "file:a.yaml:3:2"},
		{config.Source{Kind: config.SourceFile, File: "a.yaml"}, "file:a.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "termdesk "+Version) {
		t.Fatalf("version output = %q", out)
	}
}
