package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/dshills/termrect/internal/config"
)

// options holds the parsed command line.
type options struct {
	configPath  string
	watch       bool
	showVersion bool

	// overrides are settings given as flags, applied over file and env.
	overrides []override
}

type override struct {
	key, value string
}

// settingFlag is a flag.Value that records an override for one setting.
type settingFlag struct {
	key  string
	opts *options
}

func (f settingFlag) String() string { return "" }

func (f settingFlag) Set(value string) error {
	f.opts.overrides = append(f.opts.overrides, override{key: f.key, value: value})
	return nil
}

// parseFlags parses args. Usage and errors go to out.
func parseFlags(args []string, out io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("termrect", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	settings := []struct {
		name, key, usage string
	}{
		{"width", "width", "Grid width in cells (0 = device width)"},
		{"height", "height", "Grid height in cells (0 = device height)"},
		{"fill", "fill", "Single-cell string blank rows are made of"},
		{"backend", "backend", "Output backend (tcell, ansi, null)"},
		{"script", "script", "Lua scene to run"},
		{"frames", "frames", "Number of frames to run (0 = until quit)"},
		{"delay", "frameDelay", "Pause between frames (e.g. 50ms)"},
		{"log-level", "logging.level", "Log level (debug, info, warn, error)"},
		{"log-file", "logging.file", "Write logs to this file"},
	}
	for _, s := range settings {
		fs.Var(settingFlag{key: s.key, opts: opts}, s.name, s.usage)
	}

	fs.Usage = func() {
		fmt.Fprintf(out, "termrect - play a scene into a terminal screen grid\n\n")
		fmt.Fprintf(out, "Usage: termrect [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  termrect                          Run the built-in demo\n")
		fmt.Fprintf(out, "  termrect -script scene.lua        Run a Lua scene\n")
		fmt.Fprintf(out, "  termrect -backend ansi -frames 5  Paint five frames as raw ANSI\n")
		fmt.Fprintf(out, "  termrect -c termrect.toml -watch  Reload palette on save\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(out, "unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts, nil
}

// loadConfig layers defaults, the config file, the environment and the
// flag overrides, then validates the result.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		if _, err := config.LoadFile(cfg, o.configPath); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg, config.NewEnvLoader()); err != nil {
		return nil, err
	}
	for _, ov := range o.overrides {
		if err := cfg.Set(ov.key, ov.value); err != nil {
			return nil, fmt.Errorf("flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
