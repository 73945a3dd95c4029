// Package logging sets up the structured logger. The terminal belongs to the
// desktop while it runs, so records go to a rotating file instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Options configures New.
type Options struct {
	Level     string
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// Logger is a slog.Logger whose level can change at runtime, for example
// after a config reload.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	out   io.Closer
}

// New opens the log file and returns a text logger writing to it.
func New(opts Options) (*Logger, error) {
	f, err := OpenRotating(opts.File, opts.MaxSizeMB, opts.MaxFiles)
	if err != nil {
		return nil, err
	}
	l := NewWriter(f, opts.Level)
	l.out = f
	return l, nil
}

// NewWriter returns a logger writing to w. The caller owns w.
func NewWriter(w io.Writer, level string) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format("2006-01-02 15:04:05"))
				}
			}
			return a
		},
	})
	return &Logger{Logger: slog.New(handler), level: lv}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard, "error")
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level { return l.level.Level() }

// Close closes the log file, if New opened one.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	return l.out.Close()
}

// ParseLevel converts a config string to a slog level. Unknown values map
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
