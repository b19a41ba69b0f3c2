// Package config defines the application configuration and parses it from
// command-line flags and FIBSEQ_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "FIBSEQ_"

// Defaults.
const (
	DefaultN        = 10
	DefaultAlgo     = "auto"
	DefaultTimeout  = time.Minute
	DefaultAddr     = ":8080"
	DefaultLogLevel = "warn"
	DefaultMaxN     = 100_000
)

// DefaultServeMaxN replaces DefaultMaxN under --serve unless --max-n or
// FIBSEQ_MAX_N is given. Each /sequence response holds every term in memory.
const DefaultServeMaxN = 5_000

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the number of terms to generate.
	N int
	// Algo selects the generator: "auto", "all" or a registered name.
	Algo string
	// Format is the output format (see format.Names).
	Format string
	// OutputFile receives the sequence in addition to stdout when set.
	OutputFile string
	// Quiet prints only the sequence, even in verbose-capable modes.
	Quiet bool
	// Verbose prints the execution header, timings and comparison table.
	Verbose bool
	// Timeout bounds a single generation run.
	Timeout time.Duration
	// TUI launches the interactive explorer.
	TUI bool
	// Serve runs the HTTP service instead of a one-shot generation.
	Serve bool
	// Addr is the listen address used with Serve.
	Addr string
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the minimum level written to stderr.
	LogLevel string
	// MaxN caps N on every surface.
	MaxN int
	// Completion names a shell whose completion script should be printed.
	Completion string
}

// Validate checks semantic constraints that flag parsing cannot express.
// A negative N is rejected rather than clamped.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.N < 0 {
		return apperrors.NewValidationError("n", "must be >= 0, got %d", c.N)
	}
	if c.MaxN <= 0 {
		return apperrors.NewValidationError("max-n", "must be > 0, got %d", c.MaxN)
	}
	if c.N > c.MaxN {
		return apperrors.NewValidationError("n", "must be <= %d, got %d", c.MaxN, c.N)
	}
	if c.Timeout <= 0 {
		return apperrors.NewValidationError("timeout", "must be positive, got %s", c.Timeout)
	}
	if !format.IsValid(c.Format) {
		return apperrors.NewConfigError("unknown format %q (available: %s)", c.Format, strings.Join(format.Names, ", "))
	}
	if c.Algo != "auto" && c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: auto, all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	if c.TUI && c.Serve {
		return apperrors.NewConfigError("--tui and --serve are mutually exclusive")
	}
	return nil
}

// ParseConfig parses args into an AppConfig. Priority is command-line flags,
// then environment variables, then defaults. A --help request returns
// flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Prints the first N Fibonacci numbers.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery option can also be set with a %s<NAME> environment variable.\n", EnvPrefix)
	}

	config := AppConfig{}
	fs.IntVar(&config.N, "n", DefaultN, "Number of Fibonacci terms to generate.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, fmt.Sprintf("Generator: auto, all, or one of %s.", strings.Join(availableAlgos, ", ")))
	fs.StringVar(&config.Format, "format", format.List, fmt.Sprintf("Output format (%s).", strings.Join(format.Names, ", ")))
	fs.StringVar(&config.OutputFile, "output", "", "Also write the sequence to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the sequence.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print configuration, timings and comparison details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time for a generation run.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive explorer.")
	fs.BoolVar(&config.Serve, "serve", false, "Run the HTTP service.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "Listen address for -serve.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.IntVar(&config.MaxN, "max-n", DefaultMaxN, "Largest accepted N.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, err
	}
	if config.Serve && !isFlagSet(fs, "max-n") && !envSet("MAX_N") {
		config.MaxN = DefaultServeMaxN
	}
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return config, nil
}
