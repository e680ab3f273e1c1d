// Package config provides the configuration management for the int2048
// calculator. It defines the configuration structure, parses command-line
// arguments, applies environment overrides and validates the result.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/memory"
)

const (
	// EnvPrefix is the prefix for all environment variables used by int2048.
	EnvPrefix = "INT2048_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultTimeout bounds a whole run (one expression, a batch or a session).
	DefaultTimeout = 5 * time.Minute
	// DefaultLogLevel keeps diagnostics off the terminal unless requested.
	DefaultLogLevel = "warn"
)

// Mode is the way the calculator consumes expressions.
type Mode string

const (
	ModeExpr       Mode = "expr"
	ModeBatch      Mode = "batch"
	ModeREPL       Mode = "repl"
	ModeTUI        Mode = "tui"
	ModeCalibrate  Mode = "calibrate"
	ModeCompletion Mode = "completion"
	ModeVersion    Mode = "version"
)

// completionShells are the values accepted by --completion.
var completionShells = []string{"bash", "zsh", "fish"}

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags and INT2048_ environment variables.
type AppConfig struct {
	// Expr is a single expression to evaluate (-e).
	Expr string
	// File is a path holding one expression per line (-f).
	File string
	// REPL starts the interactive loop. It is the default mode.
	REPL bool
	// TUI starts the interactive bubbletea calculator.
	TUI bool
	// Calibrate measures the brute-force/FFT crossover and saves a profile.
	Calibrate bool
	// CalibrationProfile is the path of the calibration profile. Empty
	// means ~/.int2048_calibration.json.
	CalibrationProfile string

	// BruteThreshold is the operand size in limbs below which
	// multiplication stays quadratic. Zero selects the resolution chain
	// (calibration profile, then hardware estimate).
	BruteThreshold int
	// DivThreshold is the divisor size in limbs up to which division uses
	// schoolbook long division. Zero selects the resolution chain.
	DivThreshold int
	// Adaptive enables runtime tuning of BruteThreshold from observed
	// multiplication timings.
	Adaptive bool

	// Timeout sets the maximum duration of the run.
	Timeout time.Duration
	// MemoryLimit caps the estimated footprint of a single operation, for
	// example "512M" or "8G". Empty disables the check.
	MemoryLimit string

	// OutputFile, if set, receives the results with a header block.
	OutputFile string
	// Verbose prints the algorithm and timing of every operation.
	Verbose bool
	// Quiet prints results only.
	Quiet bool
	// NoColor disables colored output. NO_COLOR is honoured as well.
	NoColor bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// Metrics dumps Prometheus counters to stderr on exit.
	Metrics bool
	// Completion names a shell whose completion script is printed.
	Completion string
	// Version prints the version and exits.
	Version bool
}

// Mode returns the run mode implied by the flags. Explicit modes take
// precedence in the order version, completion, calibrate, tui, expr, batch;
// the REPL is the fallback.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Version:
		return ModeVersion
	case c.Completion != "":
		return ModeCompletion
	case c.Calibrate:
		return ModeCalibrate
	case c.TUI:
		return ModeTUI
	case c.Expr != "":
		return ModeExpr
	case c.File != "":
		return ModeBatch
	}
	return ModeREPL
}

// MemoryLimitBytes returns the parsed memory limit, 0 when unset.
func (c AppConfig) MemoryLimitBytes() uint64 {
	limit, err := memory.ParseMemoryLimit(c.MemoryLimit)
	if err != nil {
		return 0
	}
	return limit
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: a ValidationError naming the flag when a single value is out of
//     range, a ConfigError when flags conflict, nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return invalid("timeout", "must be strictly positive, got %s", c.Timeout)
	}
	if c.BruteThreshold < 0 || c.BruteThreshold == 1 {
		return invalid("brute-threshold", "must be 0 (auto) or at least 2 limbs, got %d", c.BruteThreshold)
	}
	if c.DivThreshold < 0 || c.DivThreshold == 1 {
		return invalid("div-threshold", "must be 0 (auto) or at least 2 limbs, got %d", c.DivThreshold)
	}
	if c.Expr != "" && c.File != "" {
		return apperrors.NewConfigError("-e and -f are mutually exclusive")
	}
	if c.TUI && (c.Expr != "" || c.File != "" || c.REPL) {
		return apperrors.NewConfigError("--tui cannot be combined with -e, -f or --repl")
	}
	if c.REPL && (c.Expr != "" || c.File != "") {
		return apperrors.NewConfigError("--repl cannot be combined with -e or -f")
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("--verbose and --quiet are mutually exclusive")
	}
	if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
		return invalid("memory-limit", "%v", err)
	}
	if c.Completion != "" && !slices.Contains(completionShells, c.Completion) {
		return invalid("completion", "unsupported shell %q (want %s)", c.Completion, strings.Join(completionShells, ", "))
	}
	if !validLogLevel(c.LogLevel) {
		return invalid("log-level", "unknown level %q (want debug, info, warn, error or disabled)", c.LogLevel)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return apperrors.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func validLogLevel(name string) bool {
	switch strings.ToLower(name) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return true
	}
	return false
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. Flags accept one or two leading dashes.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp for -h, a parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Expr, "expr", "", "Evaluate one expression and print the result.")
	fs.StringVar(&config.Expr, "e", "", "Evaluate one expression (shorthand).")
	fs.StringVar(&config.File, "file", "", "Evaluate one expression per line of `PATH`.")
	fs.StringVar(&config.File, "f", "", "Evaluate a file of expressions (shorthand).")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive loop (default without -e or -f).")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive terminal calculator.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure the brute-force/FFT crossover and save a profile.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to calibration profile file (default: ~/.int2048_calibration.json).")
	fs.IntVar(&config.BruteThreshold, "brute-threshold", 0, "Operand size in `limbs` below which multiplication is quadratic (0 = auto).")
	fs.IntVar(&config.DivThreshold, "div-threshold", 0, "Divisor size in `limbs` up to which division is schoolbook (0 = auto).")
	fs.BoolVar(&config.Adaptive, "adaptive", false, "Tune the multiplication threshold from observed timings.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time of the run.")
	fs.StringVar(&config.MemoryLimit, "memory-limit", "", "Refuse operations estimated above this `size` (e.g. 512M, 8G).")
	fs.StringVar(&config.OutputFile, "output", "", "Write results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the algorithm and timing of every operation.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log `level`: debug, info, warn, error or disabled.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Dump operation metrics in Prometheus text format on exit.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for `shell` (bash, zsh, fish).")
	fs.BoolVar(&config.Version, "version", false, "Print the version and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q (quote the expression and pass it with -e)", fs.Arg(0))
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
