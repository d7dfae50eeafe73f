package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-rain/internal/config"
	"github.com/vovakirdan/tui-rain/internal/engine"
	"github.com/vovakirdan/tui-rain/internal/registry"
)

func runRain(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(logFile, debug)
	if err != nil {
		return err
	}
	defer closeLog()

	markExplicit(cmd.Flags(), &opts)
	cfg, err := opts.Resolve()
	if err != nil {
		return err
	}

	if !registry.Exists(opts.Renderer) {
		return fmt.Errorf("unknown renderer %q, run 'rain list' to see available renderers", opts.Renderer)
	}
	backend, err := registry.Create(opts.Renderer)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg, backend, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := backend.Open(); err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to restore terminal", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(rootContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting", "renderer", backend.ID(), "seed", cfg.Seed)
	return eng.Run(ctx)
}

// markExplicit records the preset-controlled flags given on the command line.
func markExplicit(flags *pflag.FlagSet, o *config.Options) {
	for _, name := range config.PresetOptions() {
		if flags.Changed(name) {
			o.SetExplicit(name)
		}
	}
}

// newLogger returns a logger writing to path, or discarding output when
// path is empty. The returned func closes the file.
func newLogger(path string, debug bool) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		//nolint:errcheck // Best-effort close on exit
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rain",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// rootContext is used when cobra runs without a context.
func rootContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
