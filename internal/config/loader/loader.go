// Package loader decodes configuration files and environment variables.
//
// Files are decoded straight into the caller's struct, so values already
// present (the defaults) survive unless the file sets them.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension is not a
// known configuration format.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format is a configuration file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// LoadFile decodes the file at path into v.
// Returns false, nil if the file doesn't exist (not an error).
func LoadFile(fsys FileSystem, path string, v any) (bool, error) {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil // File doesn't exist, not an error
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(format, path, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Decode decodes data in the given format into v. Unknown keys are
// rejected. source names the data in errors.
func Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data, v)
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
