package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw overrides on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setString(&cfg.Username, raw.Username)
	setString(&cfg.LogLevel, raw.LogLevel)
	if raw.Logging != nil {
		setString(&cfg.Logging.File, raw.Logging.File)
		setInt(&cfg.Logging.MaxSizeMB, raw.Logging.MaxSizeMB)
		setInt(&cfg.Logging.MaxFiles, raw.Logging.MaxFiles)
	}
	if raw.Cascade != nil {
		setInt(&cfg.Cascade.OriginX, raw.Cascade.OriginX)
		setInt(&cfg.Cascade.OriginY, raw.Cascade.OriginY)
		setInt(&cfg.Cascade.Step, raw.Cascade.Step)
	}
	if raw.WindowSizes != nil {
		applyWindowSize(&cfg.WindowSizes.Default, raw.WindowSizes.Default)
		applyWindowSize(&cfg.WindowSizes.Narrow, raw.WindowSizes.Narrow)
	}
	applyWindowSize(&cfg.MinWindowSize, raw.MinWindowSize)
	setInt(&cfg.TaskbarHeight, raw.TaskbarHeight)
	setInt(&cfg.CloseDelayMS, raw.CloseDelayMS)
	setInt(&cfg.TransitionMS, raw.TransitionMS)
	setInt(&cfg.DoubleClickMS, raw.DoubleClickMS)
	if raw.PinnedApps != nil {
		cfg.PinnedApps = append(cfg.PinnedApps[:0:0], (*raw.PinnedApps)...)
	}
	if raw.Theme != nil {
		setString(&cfg.Theme.Desktop, raw.Theme.Desktop)
		setString(&cfg.Theme.Window, raw.Theme.Window)
		setString(&cfg.Theme.Title, raw.Theme.Title)
		setString(&cfg.Theme.ActiveTitle, raw.Theme.ActiveTitle)
		setString(&cfg.Theme.Taskbar, raw.Theme.Taskbar)
		setString(&cfg.Theme.Selection, raw.Theme.Selection)
		setString(&cfg.Theme.Accent, raw.Theme.Accent)
	}
	if raw.Tracing != nil {
		if raw.Tracing.Enabled != nil {
			cfg.Tracing.Enabled = *raw.Tracing.Enabled
		}
		setString(&cfg.Tracing.Exporter, raw.Tracing.Exporter)
		setString(&cfg.Tracing.Endpoint, raw.Tracing.Endpoint)
		setString(&cfg.Tracing.File, raw.Tracing.File)
	}

	return cfg
}

func applyWindowSize(dst *WindowSize, raw *RawWindowSize) {
	if raw == nil {
		return
	}
	setInt(&dst.Width, raw.Width)
	setInt(&dst.Height, raw.Height)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
