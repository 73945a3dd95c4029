package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/termdesk/internal/config"
	"github.com/1broseidon/termdesk/internal/logging"
	"github.com/1broseidon/termdesk/internal/runtimepath"
	"github.com/1broseidon/termdesk/internal/telemetry"
	"github.com/1broseidon/termdesk/internal/ui"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the desktop (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd.Context(), flags)
		},
	}
}

func runDesktop(ctx context.Context, flags *globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("termdesk needs an interactive terminal")
	}

	path, err := flags.resolveConfigPath()
	if err != nil {
		return err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}
	cfg := res.Config

	logger, err := openLogger(cfg, flags.verbose)
	if err != nil {
		return err
	}
	defer logger.Close()

	tracer, closeTrace, err := openTracer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeTrace()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reloads <-chan config.Reload
	watcher, err := config.NewWatcher(path, config.DefaultWatchDebounce)
	if err != nil {
		logger.Warn("config watch disabled", "file", path, "error", err)
	} else {
		defer watcher.Close()
		go watcher.Run(ctx)
		reloads = watcher.Reloads()
	}

	logger.Info("desktop starting", "version", Version, "config", res.File, "tracing", tracer.Enabled())
	err = ui.Run(ctx, ui.Deps{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
		Tracer:     tracer,
		Reloads:    reloads,
	})
	if err != nil {
		logger.Error("desktop stopped", "error", err)
		return err
	}
	logger.Info("desktop stopped")
	return nil
}

func openLogger(cfg *config.Config, verbose bool) (*logging.Logger, error) {
	file := cfg.Logging.File
	if file == "" {
		p, err := runtimepath.LogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
		file = p
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:     level,
		File:      file,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger, nil
}

// openTracer builds the tracer from the config. The returned func flushes
// spans and closes the trace file.
func openTracer(ctx context.Context, cfg *config.Config) (*telemetry.Tracer, func(), error) {
	tc := telemetry.Config{
		Enabled:  cfg.Tracing.Enabled,
		Exporter: cfg.Tracing.Exporter,
		Endpoint: cfg.Tracing.Endpoint,
		Version:  Version,
	}

	var out *logging.RotatingFile
	if tc.Enabled && tc.Exporter == telemetry.ExporterStdout {
		file := cfg.Tracing.File
		if file == "" {
			p, err := runtimepath.TracePath()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve trace path: %w", err)
			}
			file = p
		}
		f, err := logging.OpenRotating(file, cfg.Logging.MaxSizeMB, cfg.Logging.MaxFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		out = f
		tc.Output = f
	}

	tracer, err := telemetry.New(ctx, tc)
	if err != nil {
		if out != nil {
			out.Close()
		}
		return nil, nil, err
	}
	return tracer, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tracer.Shutdown(shutdownCtx)
		if out != nil {
			_ = out.Close()
		}
	}, nil
}
