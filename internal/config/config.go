// Package config parses the command line and the FIBBRIDGE_* environment into
// an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/fibonacci/memory"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FIBBRIDGE_"

	// DefaultN is the index computed when -n is not given.
	DefaultN uint64 = 100_000
	// DefaultAlgo runs every backend and compares them.
	DefaultAlgo = "all"
	// DefaultTimeout bounds a single calculation.
	DefaultTimeout = 5 * time.Minute
	// DefaultAddr is the listen address of --serve.
	DefaultAddr = ":8080"
	// DefaultLogLevel is the zerolog level name used when none is given.
	DefaultLogLevel = "info"
	// DefaultGCMode leaves GC control to the size heuristic.
	DefaultGCMode = "auto"
)

// AppConfig is the resolved configuration of one run.
type AppConfig struct {
	// N is the Fibonacci index to compute.
	N uint64
	// Algo is a backend name or "all".
	Algo string
	// Timeout bounds the calculation.
	Timeout time.Duration

	Verbose    bool
	Details    bool
	ShowValue  bool
	Quiet      bool
	HexOutput  bool
	OutputFile string
	NoColor    bool

	// LastDigits, when positive, switches to computing only the last K digits.
	LastDigits int
	// MemoryLimit is a size such as "512M"; empty means unlimited.
	MemoryLimit string
	// CheckInterval is the number of steps between cancellation checks.
	CheckInterval uint64
	// GCMode is one of auto, aggressive or disabled.
	GCMode string

	REPL  bool
	TUI   bool
	Serve bool
	// Addr is the listen address for Serve.
	Addr string
	// MaxN caps the index accepted by the HTTP host.
	MaxN uint64

	LogLevel   string
	Completion string
}

// ToCalculationOptions returns the backend options for this configuration.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{CheckInterval: c.CheckInterval}
}

// Validate checks the configuration against the available backends.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != DefaultAlgo {
		found := false
		for _, a := range availableAlgos {
			if a == c.Algo {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewConfigError("unknown algorithm %q (available: %s, %s)",
				c.Algo, DefaultAlgo, strings.Join(availableAlgos, ", "))
		}
	}
	if c.LastDigits < 0 || c.LastDigits > fibonacci.MaxLastDigits {
		return apperrors.NewConfigError("--last-digits must be between 1 and %d", fibonacci.MaxLastDigits)
	}
	if c.MemoryLimit != "" {
		if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
			return apperrors.NewConfigError("invalid --memory-limit: %v", err)
		}
	}
	switch c.GCMode {
	case "auto", "aggressive", "disabled":
	default:
		return apperrors.NewConfigError("unknown --gc-mode %q (available: auto, aggressive, disabled)", c.GCMode)
	}
	modes := 0
	for _, on := range []bool{c.REPL, c.TUI, c.Serve} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--repl, --tui and --serve are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose cannot be combined")
	}
	if c.MaxN == 0 {
		return apperrors.NewConfigError("--max-n must be positive")
	}
	return nil
}

// ParseConfig parses args (without the program name) and applies environment
// overrides for every flag that was not set explicitly. Priority is
// CLI flags > environment > defaults. Usage errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.Uint64Var(&cfg.N, "n", DefaultN, "Index of the Fibonacci number to compute.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo,
		fmt.Sprintf("Backend to use: %s, %s.", DefaultAlgo, strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the calculation.")

	fs.BoolVar(&cfg.Verbose, "v", false, "Print the full value.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print the full value.")
	fs.BoolVar(&cfg.Details, "d", false, "Print result details (bits, digits).")
	fs.BoolVar(&cfg.Details, "details", false, "Print result details (bits, digits).")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Print the computed value.")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Print the computed value.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the value.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the value.")
	fs.BoolVar(&cfg.HexOutput, "hex", false, "Print the value in hexadecimal.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the result to this file.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")

	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "Compute only the last K decimal digits.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "Refuse to run if the estimate exceeds this size (e.g. 512M).")
	fs.Uint64Var(&cfg.CheckInterval, "check-interval", 0, "Steps between cancellation checks (0 = adaptive).")
	fs.StringVar(&cfg.GCMode, "gc-mode", DefaultGCMode, "Garbage collector control: auto, aggressive, disabled.")

	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive REPL.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the terminal UI.")
	fs.BoolVar(&cfg.Serve, "serve", false, "Start the HTTP host.")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address for --serve.")
	fs.Uint64Var(&cfg.MaxN, "max-n", DefaultMaxN, "Largest index accepted by --serve.")

	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script: bash, zsh, fish, powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Algo = strings.ToLower(cfg.Algo)

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// DefaultMaxN is the default cap on indices computed by the HTTP host. F(10^6)
// takes a few seconds with the linear recurrence.
const DefaultMaxN uint64 = 1_000_000
