// Package telemetry exports window-manager activity as OpenTelemetry spans.
// Every manager event becomes one short span; nothing is exported unless
// tracing is enabled in the config.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/1broseidon/termdesk/internal/wm"
)

const (
	TracerName  = "github.com/1broseidon/termdesk"
	ServiceName = "termdesk"
)

// Exporter names accepted in the config.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config selects the exporter.
type Config struct {
	Enabled  bool
	Exporter string
	// Endpoint is the OTLP/HTTP collector host:port.
	Endpoint string
	// Output receives stdout-exporter spans.
	Output  io.Writer
	Version string
}

// Tracer records spans for manager events and session transitions.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// New builds a tracer. A disabled config yields a no-op tracer.
func New(ctx context.Context, cfg Config) (*Tracer, error) {
	if !cfg.Enabled || cfg.Exporter == "" || cfg.Exporter == ExporterNone {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return &Tracer{
		tracer:   provider.Tracer(TracerName, trace.WithInstrumentationVersion(cfg.Version)),
		provider: provider,
	}, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterStdout:
		opts := []stdouttrace.Option{stdouttrace.WithoutTimestamps()}
		if cfg.Output != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Output))
		}
		return stdouttrace.New(opts...)
	case ExporterOTLP:
		opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
}

// Enabled reports whether spans leave the process.
func (t *Tracer) Enabled() bool { return t.provider != nil }

// Shutdown flushes pending spans.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider != nil {
		return t.provider.Shutdown(ctx)
	}
	return nil
}

// Observe is a wm.Listener that records one span per event.
func (t *Tracer) Observe(e wm.Event) {
	_, span := t.tracer.Start(context.Background(), "wm."+e.Kind.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("window.id", string(e.Window.ID)),
			attribute.String("window.kind", e.Window.Kind.String()),
			attribute.Int("window.z", e.Window.Z),
			attribute.Bool("window.minimized", e.Window.Minimized),
			attribute.Bool("window.maximized", e.Window.Maximized),
			attribute.String("wm.active", string(e.Active)),
		),
	)
	span.End()
}

// Session records a lock state change.
func (t *Tracer) Session(from, to, sessionID string) {
	_, span := t.tracer.Start(context.Background(), "session.transition",
		trace.WithAttributes(
			attribute.String("session.from", from),
			attribute.String("session.to", to),
			attribute.String("session.id", sessionID),
		),
	)
	span.End()
}
