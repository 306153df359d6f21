package config

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dshills/termrect/internal/renderer/text"
)

// Backend names accepted by the backend setting.
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
	BackendNull  = "null"
)

// Backends lists the valid backend names.
var Backends = []string{BackendTcell, BackendANSI, BackendNull}

// LogLevels lists the valid logging.level values.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Config holds the settings of a session.
type Config struct {
	// Width and Height size the grid. Zero means the device size.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Fill is the single-cell string blank rows are made of.
	Fill string `toml:"fill" yaml:"fill"`

	// Backend selects the output device: tcell, ansi or null.
	Backend string `toml:"backend" yaml:"backend"`

	// Frames is how many frames the scene runs. Zero runs until quit.
	Frames int `toml:"frames" yaml:"frames"`

	// FrameDelay is the pause between frames, as a Go duration.
	FrameDelay string `toml:"frameDelay" yaml:"frameDelay"`

	// Script is the Lua scene file.
	Script string `toml:"script" yaml:"script"`

	Logging LoggingConfig `toml:"logging" yaml:"logging"`

	// Palette maps style names to style specs.
	Palette map[string]StyleSpec `toml:"palette" yaml:"palette"`
}

// LoggingConfig configures the session logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty logs to stderr, except for the
	// tcell backend, which owns the terminal and disables logging.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Fill:       " ",
		Backend:    BackendTcell,
		Frames:     1,
		FrameDelay: "50ms",
		Logging: LoggingConfig{
			Level: "info",
		},
		Palette: DefaultPalette(),
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Palette = make(map[string]StyleSpec, len(c.Palette))
	for name, spec := range c.Palette {
		spec.Attrs = slices.Clone(spec.Attrs)
		out.Palette[name] = spec
	}
	return &out
}

// Delay returns FrameDelay as a duration, or zero if it does not parse.
// Validate reports unparsable values.
func (c *Config) Delay() time.Duration {
	d, err := time.ParseDuration(c.FrameDelay)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks every setting. The returned error joins one
// *ValidationError per invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Width < 0 {
		errs = append(errs, invalid("width", c.Width, "must not be negative"))
	}
	if c.Height < 0 {
		errs = append(errs, invalid("height", c.Height, "must not be negative"))
	}
	if text.DisplayWidth(c.Fill) != 1 {
		errs = append(errs, invalid("fill", c.Fill, "must be exactly one cell wide"))
	}
	if !slices.Contains(Backends, c.Backend) {
		errs = append(errs, invalid("backend", c.Backend, "must be one of %s", strings.Join(Backends, ", ")))
	}
	if c.Frames < 0 {
		errs = append(errs, invalid("frames", c.Frames, "must not be negative"))
	}
	if d, err := time.ParseDuration(c.FrameDelay); err != nil {
		errs = append(errs, invalid("frameDelay", c.FrameDelay, "not a duration"))
	} else if d < 0 {
		errs = append(errs, invalid("frameDelay", c.FrameDelay, "must not be negative"))
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, invalid("logging.level", c.Logging.Level, "must be one of %s", strings.Join(LogLevels, ", ")))
	}
	for _, name := range slices.Sorted(maps.Keys(c.Palette)) {
		if _, err := c.Palette[name].resolve("palette." + name); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}
