package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/wm"
)

func TestNew_Disabled(t *testing.T) {
	tr, err := New(context.Background(), Config{Enabled: false, Exporter: ExporterStdout})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("disabled config produced an exporting tracer")
	}
	tr.Observe(wm.Event{Kind: wm.EventOpened})
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}

func TestNew_UnknownExporter(t *testing.T) {
	if _, err := New(context.Background(), Config{Enabled: true, Exporter: "jaeger"}); err == nil {
		t.Fatalf("New() with unknown exporter succeeded")
	}
}

func TestObserveExportsManagerEvents(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	tr, err := New(ctx, Config{Enabled: true, Exporter: ExporterStdout, Output: &buf, Version: "test"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !tr.Enabled() {
		t.Fatalf("stdout tracer not enabled")
	}

	m := wm.NewManager()
	unsubscribe := m.Subscribe(tr.Observe)
	id := m.Open(apps.Calculator)
	m.Minimize(id)
	unsubscribe()
	tr.Session("sign-in", "unlocked", "abc")

	if err := tr.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"wm.opened"`, `"wm.minimized"`, `"session.transition"`, string(id)} {
		if !strings.Contains(out, want) {
			t.Fatalf("exported spans missing %s:\n%s", want, out)
		}
	}
}
