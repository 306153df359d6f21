package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/termrect/internal/app"
	"github.com/dshills/termrect/internal/config"
	"github.com/dshills/termrect/internal/renderer/backend"
	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/grid"
)

func TestParseFlags(t *testing.T) {
	var out strings.Builder
	opts, err := parseFlags([]string{"-c", "x.toml", "-watch", "-width", "40", "-delay", "10ms", "-log-level", "debug"}, &out)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if opts.configPath != "x.toml" {
		t.Errorf("configPath = %q, want %q", opts.configPath, "x.toml")
	}
	if !opts.watch {
		t.Error("watch = false, want true")
	}

	want := []override{{"width", "40"}, {"frameDelay", "10ms"}, {"logging.level", "debug"}}
	if len(opts.overrides) != len(want) {
		t.Fatalf("overrides = %v, want %v", opts.overrides, want)
	}
	for i := range want {
		if opts.overrides[i] != want[i] {
			t.Errorf("overrides[%d] = %v, want %v", i, opts.overrides[i], want[i])
		}
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"-h"}, true},
		{"unknown flag", []string{"-nope"}, false},
		{"positional", []string{"scene.lua"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			_, err := parseFlags(tt.args, &out)
			if err == nil {
				t.Fatal("parseFlags() error = nil")
			}
			if got := errors.Is(err, flag.ErrHelp); got != tt.help {
				t.Errorf("errors.Is(err, flag.ErrHelp) = %v, want %v", got, tt.help)
			}
			if !strings.Contains(out.String(), "Usage: termrect") {
				t.Errorf("output %q missing usage", out.String())
			}
		})
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termrect.toml")
	data := "width = 10\nheight = 3\nframes = 7\nbackend = \"ansi\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TERMRECT_HEIGHT", "5")
	t.Setenv("TERMRECT_FRAMES", "9")

	opts, err := parseFlags([]string{"-c", path, "-frames", "2"}, &strings.Builder{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"width from file", cfg.Width, 10},
		{"height from env", cfg.Height, 5},
		{"frames from flag", cfg.Frames, 2},
		{"backend from file", cfg.Backend, config.BackendANSI},
		{"fill default", cfg.Fill, " "},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadConfigInvalidFlag(t *testing.T) {
	opts, err := parseFlags([]string{"-width", "wide"}, &strings.Builder{})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if _, err := opts.loadConfig(); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("loadConfig() error = %v, want %v", err, config.ErrValidationFailed)
	}

	opts, _ = parseFlags([]string{"-backend", "vt52"}, &strings.Builder{})
	if _, err := opts.loadConfig(); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("loadConfig() error = %v, want %v", err, config.ErrValidationFailed)
	}
}

func TestNewBackend(t *testing.T) {
	b, err := newBackend(config.BackendNull, os.Stdout)
	if err != nil {
		t.Fatalf("newBackend(null) error = %v", err)
	}
	if _, ok := b.(*backend.NullBackend); !ok {
		t.Errorf("newBackend(null) = %T, want *backend.NullBackend", b)
	}

	if _, err := newBackend("vt52", os.Stdout); err == nil {
		t.Error("newBackend(vt52) error = nil")
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "termrect.log")

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Info("hello")
	closeLog()

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] termrect: hello") {
		t.Errorf("log file = %q, want the record", data)
	}
}

func TestDemoScene(t *testing.T) {
	g := grid.New(20, 3)
	scene := demoScene{styles: func(string) (core.Style, bool) { return core.Style{}, false }}

	for n := 0; n < 2; n++ {
		if err := scene.Frame(g, n); err != nil {
			t.Fatalf("Frame(%d) error = %v", n, err)
		}
	}

	if got := g.Line(0); !strings.HasPrefix(got, " termrect") || !strings.HasSuffix(got, "frame 1 ") {
		t.Errorf("Line(0) = %q, want title and counter", got)
	}
	if got := g.Line(1); got != " /                  " {
		t.Errorf("Line(1) = %q, want spinner", got)
	}
}

// playHeadless runs cfg on a null backend and returns what play printed.
func playHeadless(t *testing.T, cfg *config.Config) string {
	t.Helper()

	var out strings.Builder
	done := make(chan error, 1)
	go func() {
		dev := backend.NewNullBackend(cfg.Width, cfg.Height)
		done <- play(context.Background(), &options{}, cfg, dev, app.NullLogger, &out)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("play() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("play() did not finish")
	}
	return out.String()
}

func headlessConfig() *config.Config {
	cfg := config.Default()
	cfg.Backend = config.BackendNull
	cfg.Width, cfg.Height = 20, 3
	cfg.Frames = 2
	cfg.FrameDelay = "0s"
	return cfg
}

func TestPlayDemo(t *testing.T) {
	got := playHeadless(t, headlessConfig())

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("play() printed %q, want the grid", got)
	}
	if !strings.HasPrefix(lines[0], " termrect") || !strings.HasSuffix(lines[0], "frame 1") {
		t.Errorf("line 0 = %q, want title and counter", lines[0])
	}
	if lines[1] != " /" {
		t.Errorf("line 1 = %q, want spinner", lines[1])
	}
}

func TestPlayScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.lua")
	src := `function frame(n) set_text(0, 0, "lua " .. n, "title") end`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := headlessConfig()
	cfg.Script = path

	if got, want := playHeadless(t, cfg), "lua 1\n"; got != want {
		t.Errorf("play() printed %q, want %q", got, want)
	}
}

func TestPlayScriptMissing(t *testing.T) {
	cfg := headlessConfig()
	cfg.Script = filepath.Join(t.TempDir(), "missing.lua")

	err := play(context.Background(), &options{}, cfg, backend.NewNullBackend(20, 3), app.NullLogger, &strings.Builder{})
	if err == nil {
		t.Error("play() error = nil, want a load error")
	}
}

func TestPrintGrid(t *testing.T) {
	g := grid.New(6, 4)
	grid.DrawStrAt(g, core.Pos{X: 1}, core.DefaultStyle(), "ab")
	grid.DrawStrAt(g, core.Pos{Y: 2}, core.DefaultStyle(), "世")

	var out strings.Builder
	printGrid(&out, g)
	if want := " ab\n\n世\n"; out.String() != want {
		t.Errorf("printGrid() = %q, want %q", out.String(), want)
	}
}
