package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// Cascade controls where successive windows open.
type Cascade struct {
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`
	Step    int `yaml:"step"`
}

// WindowSize is a width/height pair in cells.
type WindowSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Size converts to geometry.
func (s WindowSize) Size() geom.Size {
	return geom.Size{Width: s.Width, Height: s.Height}
}

// WindowSizes holds the per-class default sizes for new windows.
type WindowSizes struct {
	Default WindowSize `yaml:"default"`
	Narrow  WindowSize `yaml:"narrow"` // apps marked narrow (calculator)
}

// Theme holds lipgloss color strings (ANSI index or #rrggbb).
type Theme struct {
	Desktop     string `yaml:"desktop"`
	Window      string `yaml:"window"`
	Title       string `yaml:"title"`
	ActiveTitle string `yaml:"active_title"`
	Taskbar     string `yaml:"taskbar"`
	Selection   string `yaml:"selection"`
	Accent      string `yaml:"accent"`
}

// TracingConfig configures OpenTelemetry export of window-manager commands.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
	// Exporter is one of: none, stdout, otlp
	Exporter string `yaml:"exporter"`
	// Endpoint is the OTLP/HTTP collector host:port (otlp only)
	Endpoint string `yaml:"endpoint,omitempty"`
	// File receives stdout-exporter spans (default: <state dir>/termdesk-trace.json)
	File string `yaml:"file,omitempty"`
}

// LoggingConfig configures the rotating log file.
type LoggingConfig struct {
	// File is the log file path (default: <state dir>/termdesk.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 5)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

const (
	DefaultCloseDelay      = 200 * time.Millisecond
	DefaultTransition      = 200 * time.Millisecond
	DefaultDoubleClick     = 400 * time.Millisecond
	DefaultTaskbarHeight   = 3
	DefaultLogMaxSizeMB    = 5
	DefaultLogMaxFiles     = 3
	DefaultTracingExporter = "none"
)

// Config holds the application configuration.
type Config struct {
	Username      string        `yaml:"username"`
	LogLevel      string        `yaml:"log_level"`
	Logging       LoggingConfig `yaml:"logging,omitempty"`
	Cascade       Cascade       `yaml:"cascade"`
	WindowSizes   WindowSizes   `yaml:"window_sizes"`
	MinWindowSize WindowSize    `yaml:"min_window_size"`
	TaskbarHeight int           `yaml:"taskbar_height"`
	CloseDelayMS  int           `yaml:"close_delay_ms"`
	TransitionMS  int           `yaml:"transition_ms"`
	DoubleClickMS int           `yaml:"double_click_ms"`
	PinnedApps    []apps.Kind   `yaml:"pinned_apps"`
	Theme         Theme         `yaml:"theme"`
	Tracing       TracingConfig `yaml:"tracing,omitempty"`
}

// DefaultPinnedApps mirrors the taskbar order shipped by default.
func DefaultPinnedApps() []apps.Kind {
	return []apps.Kind{apps.Explorer, apps.Browser, apps.Editor, apps.Paint, apps.Calculator}
}

func DefaultConfig() *Config {
	return &Config{
		Username: "Administrator",
		LogLevel: "info",
		Logging: LoggingConfig{
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
		Cascade: Cascade{OriginX: 16, OriginY: 2, Step: 3},
		WindowSizes: WindowSizes{
			Default: WindowSize{Width: 64, Height: 20},
			Narrow:  WindowSize{Width: 30, Height: 18},
		},
		MinWindowSize: WindowSize{Width: 20, Height: 6},
		TaskbarHeight: DefaultTaskbarHeight,
		CloseDelayMS:  int(DefaultCloseDelay / time.Millisecond),
		TransitionMS:  int(DefaultTransition / time.Millisecond),
		DoubleClickMS: int(DefaultDoubleClick / time.Millisecond),
		PinnedApps:    DefaultPinnedApps(),
		Theme: Theme{
			Desktop:     "24",
			Window:      "255",
			Title:       "252",
			ActiveTitle: "153",
			Taskbar:     "254",
			Selection:   "39",
			Accent:      "33",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: DefaultTracingExporter,
		},
	}
}

// CloseDelay returns the deferred-close delay.
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.CloseDelayMS) * time.Millisecond
}

// Transition returns the easing duration for open/close/maximize.
func (c *Config) Transition() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// DoubleClick returns the maximum gap between clicks of a double-click.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

// DefaultSize returns the size a new window of kind k opens with.
func (c *Config) DefaultSize(k apps.Kind) geom.Size {
	if apps.Lookup(k).Narrow {
		return c.WindowSizes.Narrow.Size()
	}
	return c.WindowSizes.Default.Size()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	if c.Cascade.Step < 0 {
		return &ValidationError{Path: "cascade.step", Err: fmt.Errorf("step must be >= 0")}
	}
	if err := validateSize("window_sizes.default", c.WindowSizes.Default); err != nil {
		return err
	}
	if err := validateSize("window_sizes.narrow", c.WindowSizes.Narrow); err != nil {
		return err
	}
	if err := validateSize("min_window_size", c.MinWindowSize); err != nil {
		return err
	}
	if c.WindowSizes.Default.Width < c.MinWindowSize.Width || c.WindowSizes.Default.Height < c.MinWindowSize.Height {
		return &ValidationError{Path: "window_sizes.default", Err: fmt.Errorf("default size must be at least min_window_size")}
	}
	if c.WindowSizes.Narrow.Width < c.MinWindowSize.Width || c.WindowSizes.Narrow.Height < c.MinWindowSize.Height {
		return &ValidationError{Path: "window_sizes.narrow", Err: fmt.Errorf("narrow size must be at least min_window_size")}
	}
	if c.TaskbarHeight < 1 {
		return &ValidationError{Path: "taskbar_height", Err: fmt.Errorf("taskbar_height must be >= 1")}
	}
	if c.CloseDelayMS < 0 {
		return &ValidationError{Path: "close_delay_ms", Err: fmt.Errorf("close_delay_ms must be >= 0")}
	}
	if c.TransitionMS < 0 {
		return &ValidationError{Path: "transition_ms", Err: fmt.Errorf("transition_ms must be >= 0")}
	}
	if c.DoubleClickMS <= 0 {
		return &ValidationError{Path: "double_click_ms", Err: fmt.Errorf("double_click_ms must be > 0")}
	}
	seen := make(map[apps.Kind]struct{}, len(c.PinnedApps))
	for _, k := range c.PinnedApps {
		if !k.Valid() {
			return &ValidationError{Path: "pinned_apps", Err: fmt.Errorf("unknown app %v", k)}
		}
		if _, dup := seen[k]; dup {
			return &ValidationError{Path: "pinned_apps", Err: fmt.Errorf("%s is pinned twice", k)}
		}
		seen[k] = struct{}{}
	}
	if strings.TrimSpace(c.Username) == "" {
		return &ValidationError{Path: "username", Err: fmt.Errorf("username is required")}
	}
	switch c.Tracing.Exporter {
	case "none", "stdout":
	case "otlp":
		if c.Tracing.Enabled && strings.TrimSpace(c.Tracing.Endpoint) == "" {
			return &ValidationError{Path: "tracing.endpoint", Err: fmt.Errorf("endpoint is required for the otlp exporter")}
		}
	default:
		return &ValidationError{Path: "tracing.exporter", Err: fmt.Errorf("exporter must be one of: none, stdout, otlp")}
	}
	return nil
}

func validateSize(path string, s WindowSize) error {
	if s.Width < 1 || s.Height < 1 {
		return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be >= 1")}
	}
	return nil
}

func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "termdesk", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "termdesk", "config.yaml"), nil
}
