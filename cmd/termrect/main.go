// Package main is the entry point for termrect, which plays a scene into a
// screen grid and paints it to the terminal frame by frame.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/termrect/internal/app"
	"github.com/dshills/termrect/internal/config"
	"github.com/dshills/termrect/internal/config/watcher"
	"github.com/dshills/termrect/internal/renderer/backend"
	"github.com/dshills/termrect/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Fallback size for the ansi backend when stdout is not a terminal.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if opts.showVersion {
		fmt.Printf("termrect %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	app.SetLogger(logger)

	dev, err := newBackend(cfg.Backend, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create backend: %v\n", err)
		return 1
	}
	if err := dev.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize %s backend: %v\n", cfg.Backend, err)
		return 1
	}
	// Ensure the terminal is restored on all exit paths
	defer dev.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := play(ctx, opts, cfg, dev, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// play runs the configured scene on dev until it finishes. The null
// backend renders headless, so its final frame is printed to out.
func play(ctx context.Context, opts *options, cfg *config.Config, dev backend.Backend, logger *app.Logger, out io.Writer) error {
	session, err := app.NewSession(app.Options{Backend: dev, Config: cfg, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	var scene app.Scene = demoScene{styles: session.Style}
	if cfg.Script != "" {
		engine := script.NewEngine(session.Grid(), session.Style, script.WithLogger(logger))
		defer func() { _ = engine.Close() }()
		if err := engine.RunFile(cfg.Script); err != nil {
			return err
		}
		scene = engine
	}

	if opts.watch && opts.configPath != "" {
		w, err := watchConfig(opts, session, logger)
		if err != nil {
			logger.Warn("config reload disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	if err := session.Run(ctx, scene); err != nil {
		return err
	}
	if cfg.Backend == config.BackendNull {
		printGrid(out, session.Grid())
	}
	return nil
}

// newLogger opens the configured log destination. The tcell backend owns
// the terminal, so without a log file it logs nowhere.
func newLogger(cfg *config.Config) (*app.Logger, func(), error) {
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Logging.Level)

	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		lc.Output = f
		return app.NewLogger(lc), func() { _ = f.Close() }, nil
	case cfg.Backend == config.BackendTcell:
		return app.NullLogger, func() {}, nil
	default:
		lc.Output = os.Stderr
		return app.NewLogger(lc), func() {}, nil
	}
}

// newBackend creates the named output device.
func newBackend(name string, out *os.File) (backend.Backend, error) {
	switch name {
	case config.BackendTcell:
		return backend.NewTerminal()
	case config.BackendANSI:
		w, h := deviceSize(out)
		return backend.NewStream(out, w, h), nil
	case config.BackendNull:
		return backend.NewNullBackend(fallbackWidth, fallbackHeight), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// deviceSize returns the size of out if it is a terminal.
func deviceSize(out *os.File) (int, int) {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth, fallbackHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// watchConfig reloads the configuration into session whenever the file
// changes.
func watchConfig(opts *options, session *app.Session, logger *app.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New(opts.configPath)
	if err != nil {
		return nil, err
	}
	log := logger.WithComponent("watcher")
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			log.Warn("%s: %s, keeping current config", ev.Path, ev.Op)
			return
		}
		cfg, err := opts.loadConfig()
		if err != nil {
			log.Warn("reload %s: %v", ev.Path, err)
			return
		}
		if err := session.ApplyConfig(cfg); err != nil {
			log.Warn("apply %s: %v", ev.Path, err)
		}
	})
	if err := w.Start(); err != nil {
		_ = w.Close()
		return nil, err
	}
	log.Info("watching %s", w.Path())
	return w, nil
}
