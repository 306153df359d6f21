package loader

import (
	"os"
	"sort"
	"strings"
)

// LookupFunc reports the value of an environment variable.
type LookupFunc func(name string) (string, bool)

// EnvLoader reads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "TERMRECT_")
	mapping map[string]string // Env var suffix -> config key
	lookup  LookupFunc
}

// NewEnvLoader creates a loader for prefix. mapping maps variable names
// without the prefix to config keys.
// The prefix should include the trailing underscore (e.g., "TERMRECT_").
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// WithLookup replaces the environment lookup, for tests.
func (l *EnvLoader) WithLookup(lookup LookupFunc) *EnvLoader {
	l.lookup = lookup
	return l
}

// Var returns the full variable name for a mapped suffix.
func (l *EnvLoader) Var(suffix string) string {
	return l.prefix + suffix
}

// Setting is one environment override.
type Setting struct {
	Var   string // full variable name
	Key   string // config key
	Value string
}

// Load returns the overrides present in the environment, ordered by
// variable name.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() []Setting {
	var out []Setting
	for suffix, key := range l.mapping {
		name := l.Var(suffix)
		if val, ok := l.lookup(name); ok {
			out = append(out, Setting{Var: name, Key: key, Value: strings.TrimSpace(val)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}
