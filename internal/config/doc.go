// Package config loads the settings of a termrect session.
//
// Settings come from four layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, picked by extension
//  3. TERMRECT_* environment variables
//  4. Command line flags, applied by the caller
//
// # Basic Usage
//
//	cfg, err := config.Load("termrect.toml")
//	if err != nil {
//	    return err
//	}
//	styles, _ := cfg.Styles()
//
// # Palette
//
// The palette maps style names to colors and attributes:
//
//	[palette.title]
//	fg = "#ffcc00"
//	bg = "idx:4"
//	attrs = ["bold", "underline"]
//
// Colors are hex ("#rgb" or "#rrggbb"), "idx:N" for terminal palette
// entry N, or "default".
package config
