package config

import (
	"fmt"
	"strconv"

	"github.com/dshills/termrect/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TERMRECT_"

// envMapping maps environment variables (without EnvPrefix) to settings.
var envMapping = map[string]string{
	"WIDTH":       "width",
	"HEIGHT":      "height",
	"FILL":        "fill",
	"BACKEND":     "backend",
	"FRAMES":      "frames",
	"FRAME_DELAY": "frameDelay",
	"SCRIPT":      "script",
	"LOG_LEVEL":   "logging.level",
	"LOG_FILE":    "logging.file",
}

// Load builds a validated configuration from the defaults, the file at
// path (if any) and the environment. An empty path skips the file; a
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg, NewEnvLoader()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the file at path over cfg and reports whether the file
// existed. Settings absent from the file keep their current values.
func LoadFile(cfg *Config, path string) (bool, error) {
	return LoadFileFS(loader.DefaultFS(), cfg, path)
}

// LoadFileFS is LoadFile reading from fsys.
func LoadFileFS(fsys loader.FileSystem, cfg *Config, path string) (bool, error) {
	found, err := loader.LoadFile(fsys, path, cfg)
	if err != nil {
		return false, fmt.Errorf("load config: %w", err)
	}
	return found, nil
}

// NewEnvLoader returns the loader for TERMRECT_* variables.
func NewEnvLoader() *loader.EnvLoader {
	return loader.NewEnvLoader(EnvPrefix, envMapping)
}

// ApplyEnv overrides cfg with the variables env finds.
func ApplyEnv(cfg *Config, env *loader.EnvLoader) error {
	for _, s := range env.Load() {
		if err := cfg.Set(s.Key, s.Value); err != nil {
			return fmt.Errorf("%s: %w", s.Var, err)
		}
	}
	return nil
}

// Set assigns a setting from its string form, as given in the environment
// or on the command line.
func (c *Config) Set(key, value string) error {
	switch key {
	case "width":
		return setInt(&c.Width, key, value)
	case "height":
		return setInt(&c.Height, key, value)
	case "frames":
		return setInt(&c.Frames, key, value)
	case "fill":
		c.Fill = value
	case "backend":
		c.Backend = value
	case "frameDelay":
		c.FrameDelay = value
	case "script":
		c.Script = value
	case "logging.level":
		c.Logging.Level = value
	case "logging.file":
		c.Logging.File = value
	default:
		return invalid(key, value, "unknown setting")
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return invalid(key, value, "not an integer")
	}
	*dst = n
	return nil
}
