package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts the name of every environment variable ApplyEnv reads.
const EnvPrefix = "MODALCORE_"

// EnvName returns the environment variable for a setting path:
// "editor.tabstop" is MODALCORE_EDITOR_TABSTOP.
func EnvName(path string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() error {
	return c.applyLookup(os.LookupEnv)
}

// applyLookup overrides settings from lookup and validates the result.
// Unparseable values are reported, not ignored.
func (c *Config) applyLookup(lookup func(string) (string, bool)) error {
	for _, f := range c.fields() {
		val, ok := lookup(EnvName(f.path))
		if !ok {
			continue
		}
		if f.b != nil {
			b, ok := parseBool(val)
			if !ok {
				return &ValidationError{Path: f.path, Message: "expected a boolean", Value: val, Code: ErrCodeTypeMismatch}
			}
			*f.b = b
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return &ValidationError{Path: f.path, Message: "expected an integer", Value: val, Code: ErrCodeTypeMismatch}
		}
		*f.i = n
	}
	return c.Validate()
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}
