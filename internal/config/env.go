// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags (-q / -quiet) are declared together.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the FIBSEQ_ prefix) to the CLI flag
// name(s) it shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

var envOverrides = []envOverride{
	// Numeric overrides
	{"N", []string{"n"}, func(c *AppConfig, v string) (err error) {
		c.N, err = parseIntEnv("N", v)
		return err
	}},
	{"MAX_N", []string{"max-n"}, func(c *AppConfig, v string) (err error) {
		c.MaxN, err = parseIntEnv("MAX_N", v)
		return err
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewConfigError("invalid %sTIMEOUT %q: %v", EnvPrefix, v, err)
		}
		c.Timeout = parsed
		return nil
	}},

	// String overrides
	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) error { c.Algo = v; return nil }},
	{"FORMAT", []string{"format"}, func(c *AppConfig, v string) error { c.Format = v; return nil }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error { c.OutputFile = v; return nil }},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) error { c.Addr = v; return nil }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error { c.LogLevel = v; return nil }},

	// Boolean overrides
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error { c.Quiet = parseBoolEnv(v, c.Quiet); return nil }},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) error { c.Verbose = parseBoolEnv(v, c.Verbose); return nil }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) error { c.TUI = parseBoolEnv(v, c.TUI); return nil }},
	{"SERVE", []string{"serve"}, func(c *AppConfig, v string) error { c.Serve = parseBoolEnv(v, c.Serve); return nil }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error { c.NoColor = parseBoolEnv(v, c.NoColor); return nil }},
}

// parseIntEnv parses an integer env value. Non-integers are rejected, not ignored.
func parseIntEnv(key, val string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, apperrors.NewValidationError(strings.ToLower(key), "%s%s must be an integer, got %q", EnvPrefix, key, val)
	}
	return parsed, nil
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with FIBSEQ_):
//   - N, MAX_N, TIMEOUT, ALGO, FORMAT, OUTPUT, ADDR, LOG_LEVEL,
//     QUIET, VERBOSE, TUI, SERVE, NO_COLOR
// envSet reports whether FIBSEQ_<key> holds a non-empty value.
func envSet(key string) bool {
	return os.Getenv(EnvPrefix+key) != ""
}

func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return err
			}
		}
	}
	return nil
}
