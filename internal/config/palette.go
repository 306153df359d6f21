package config

import (
	"errors"
	"fmt"

	"github.com/dshills/termrect/internal/renderer/core"
)

// StyleSpec is a style as written in a configuration file.
type StyleSpec struct {
	FG    string   `toml:"fg" yaml:"fg"`
	BG    string   `toml:"bg" yaml:"bg"`
	Attrs []string `toml:"attrs" yaml:"attrs"`
}

// Style resolves the spec.
func (s StyleSpec) Style() (core.Style, error) {
	return s.resolve("style")
}

func (s StyleSpec) resolve(field string) (core.Style, error) {
	fg, err := core.ParseColor(s.FG)
	if err != nil {
		return core.Style{}, invalid(field+".fg", s.FG, "%v", err)
	}
	bg, err := core.ParseColor(s.BG)
	if err != nil {
		return core.Style{}, invalid(field+".bg", s.BG, "%v", err)
	}

	attrs := core.AttrNone
	for _, name := range s.Attrs {
		attr, ok := core.ParseAttribute(name)
		if !ok {
			return core.Style{}, invalid(field+".attrs", name, "unknown attribute")
		}
		attrs = attrs.With(attr)
	}

	return core.Style{Foreground: fg, Background: bg, Attributes: attrs}, nil
}

// DefaultPalette returns the built-in named styles.
func DefaultPalette() map[string]StyleSpec {
	return map[string]StyleSpec{
		"normal": {},
		"title":  {FG: "#ffcc00", Attrs: []string{"bold"}},
		"muted":  {FG: "idx:8"},
		"alert":  {FG: "#ffffff", BG: "#c0392b", Attrs: []string{"bold"}},
	}
}

// Styles resolves every palette entry.
func (c *Config) Styles() (map[string]core.Style, error) {
	styles := make(map[string]core.Style, len(c.Palette))
	var errs []error
	for name, spec := range c.Palette {
		style, err := spec.resolve("palette." + name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		styles[name] = style
	}
	return styles, joinErrors(errs)
}

// LookupStyle returns the named palette style.
func (c *Config) LookupStyle(name string) (core.Style, error) {
	spec, ok := c.Palette[name]
	if !ok {
		return core.Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return spec.resolve("palette." + name)
}

func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
