package config

import "github.com/1broseidon/termdesk/internal/apps"

// RawConfig mirrors Config with optional fields so a file only overrides
// the keys it sets.
type RawConfig struct {
	Username      *string           `yaml:"username"`
	LogLevel      *string           `yaml:"log_level"`
	Logging       *RawLogging       `yaml:"logging"`
	Cascade       *RawCascade       `yaml:"cascade"`
	WindowSizes   *RawWindowSizes   `yaml:"window_sizes"`
	MinWindowSize *RawWindowSize    `yaml:"min_window_size"`
	TaskbarHeight *int              `yaml:"taskbar_height"`
	CloseDelayMS  *int              `yaml:"close_delay_ms"`
	TransitionMS  *int              `yaml:"transition_ms"`
	DoubleClickMS *int              `yaml:"double_click_ms"`
	PinnedApps    *[]apps.Kind      `yaml:"pinned_apps"`
	Theme         *RawTheme         `yaml:"theme"`
	Tracing       *RawTracingConfig `yaml:"tracing"`
}

type RawLogging struct {
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawCascade struct {
	OriginX *int `yaml:"origin_x"`
	OriginY *int `yaml:"origin_y"`
	Step    *int `yaml:"step"`
}

type RawWindowSize struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawWindowSizes struct {
	Default *RawWindowSize `yaml:"default"`
	Narrow  *RawWindowSize `yaml:"narrow"`
}

type RawTheme struct {
	Desktop     *string `yaml:"desktop"`
	Window      *string `yaml:"window"`
	Title       *string `yaml:"title"`
	ActiveTitle *string `yaml:"active_title"`
	Taskbar     *string `yaml:"taskbar"`
	Selection   *string `yaml:"selection"`
	Accent      *string `yaml:"accent"`
}

type RawTracingConfig struct {
	Enabled  *bool   `yaml:"enabled"`
	Exporter *string `yaml:"exporter"`
	Endpoint *string `yaml:"endpoint"`
	File     *string `yaml:"file"`
}
