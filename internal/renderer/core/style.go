package core

import "strings"

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrItalic                  // Italic text
	AttrDim                     // Faint/dim text
	AttrStrikethrough           // Crossed-out text
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrUnderline               // Underlined text
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrItalic, "italic"},
	{AttrDim, "dim"},
	{AttrStrikethrough, "strikethrough"},
	{AttrReverse, "reverse"},
	{AttrUnderline, "underline"},
}

// ParseAttribute returns the attribute for a configuration name.
// Accepts the aliases "faint", "crossedout" and "invert".
func ParseAttribute(name string) (Attribute, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "faint":
		return AttrDim, true
	case "crossedout", "crossed-out":
		return AttrStrikethrough, true
	case "invert", "inverse":
		return AttrReverse, true
	}
	for _, an := range attrNames {
		if strings.EqualFold(an.name, strings.TrimSpace(name)) {
			return an.attr, true
		}
	}
	return AttrNone, false
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String lists the set attributes, e.g. "bold|underline".
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	for _, an := range attrNames {
		if a.Has(an.attr) {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}

// Style represents the visual style of text.
// Styles are plain values and may be compared with ==.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the given attributes.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = attrs
	return s
}

// With returns a new style with attr set.
func (s Style) With(attr Attribute) Style {
	s.Attributes = s.Attributes.With(attr)
	return s
}

// Without returns a new style with attr cleared.
func (s Style) Without(attr Attribute) Style {
	s.Attributes = s.Attributes.Without(attr)
	return s
}

// Toggle returns a new style with attr flipped.
func (s Style) Toggle(attr Attribute) Style {
	s.Attributes ^= attr
	return s
}

// Has returns true if attr is set.
func (s Style) Has(attr Attribute) bool {
	return s.Attributes.Has(attr)
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	return s.With(AttrBold)
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	return s.With(AttrItalic)
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	return s.With(AttrUnderline)
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	return s.With(AttrReverse)
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() &&
		s.Background.IsDefault() &&
		s.Attributes == AttrNone
}
