// Package config resolves the application configuration from command-line
// flags and environment variables, with the priority CLI > environment >
// defaults. Validation failures surface as ConfigError so the caller can
// exit with the configuration code.
package config

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/fibonacci/memory"
)

// AppName is the canonical binary name, used for the flag set and usage text.
const AppName = "fibbench"

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "FIBBENCH_"

// ─────────────────────────────────────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultN is the index computed when -n is not given.
	DefaultN int64 = 30
	// DefaultAlgo runs the full strategy comparison.
	DefaultAlgo = "all"
	// DefaultTimeout bounds a whole comparison run.
	DefaultTimeout = 5 * time.Minute
	// DefaultTheme is the color theme unless overridden (NO_COLOR still wins).
	DefaultTheme = "dark"
)

// DefaultGCMode leaves collector handling to the auto heuristic.
var DefaultGCMode = string(memory.GCModeAuto)

var validThemes = []string{"dark", "light", "none", "orange"}

var validCompletions = []string{"bash", "fish", "powershell", "zsh"}

// AppConfig holds the resolved configuration for one invocation.
type AppConfig struct {
	// N is the Fibonacci index to compute.
	N int64
	// Algo selects a strategy registry key, or "all" for the comparison run.
	Algo string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// NaiveLimit is the highest index the naive strategy will attempt.
	// Negative disables the guard; zero means the built-in default.
	NaiveLimit int64
	// MemoryLimit caps the estimated memo table footprint ("512MB", "2GiB",
	// plain bytes, "0" for no limit, empty for the adaptive default).
	MemoryLimit string
	// GCMode controls collector handling during table fills.
	GCMode string
	// Parallel runs the compared strategies concurrently instead of one at
	// a time.
	Parallel bool
	// Serve, when non-empty, starts the HTTP API on this address instead of
	// running a comparison.
	Serve string
	// TUI starts the full-screen dashboard.
	TUI bool
	// REPL starts the interactive session.
	REPL bool

	Verbose   bool
	Details   bool
	ShowValue bool
	Quiet     bool
	// OutputFile duplicates the report into a file when non-empty.
	OutputFile string
	// Theme selects the color theme.
	Theme string
	// Completion, when non-empty, prints a shell completion script and exits.
	Completion string
	// ShowVersion prints build information and exits.
	ShowVersion bool
}

// RegisterFlags declares every command-line flag on fs, bound to cfg.
// Separate from ParseFlags so the completion generator can walk the same
// registry.
func RegisterFlags(fs *flag.FlagSet, cfg *AppConfig) {
	fs.Int64Var(&cfg.N, "n", DefaultN, "Fibonacci index to compute")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, `strategy to run ("all" compares every registered strategy)`)
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "global timeout for the run (e.g. 30s, 5m)")
	fs.Int64Var(&cfg.NaiveLimit, "naive-limit", fibonacci.DefaultNaiveLimit, "highest index the naive strategy accepts; negative disables the guard")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "refuse runs whose memo table would exceed this size (e.g. 512MB, 2GiB; 0 disables, empty adapts to the host)")
	fs.StringVar(&cfg.GCMode, "gc-mode", DefaultGCMode, "collector handling during table fills: auto, aggressive or disabled")
	fs.BoolVar(&cfg.Parallel, "parallel", false, "run the compared strategies concurrently (timings become indicative)")
	fs.StringVar(&cfg.Serve, "serve", "", "serve the HTTP API on this address (e.g. :8080) instead of running a comparison")
	fs.BoolVar(&cfg.TUI, "tui", false, "start the full-screen dashboard")
	fs.BoolVar(&cfg.REPL, "i", false, "start an interactive session")
	fs.BoolVar(&cfg.REPL, "repl", false, "alias for -i")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output (comparison table, status lines)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "alias for -v")
	fs.BoolVar(&cfg.Details, "d", false, "append memory and CPU details after the run")
	fs.BoolVar(&cfg.Details, "details", false, "alias for -d")
	fs.BoolVar(&cfg.ShowValue, "c", false, "print the full computed value")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "alias for -c")
	fs.BoolVar(&cfg.Quiet, "q", false, "script mode: print only the result value")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "alias for -q")
	fs.StringVar(&cfg.OutputFile, "o", "", "duplicate the report into this file")
	fs.StringVar(&cfg.OutputFile, "output", "", "alias for -o")
	fs.StringVar(&cfg.Theme, "theme", DefaultTheme, "color theme: dark, light, orange or none")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for bash, zsh, fish or powershell and exit")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information and exit")
}

// ParseFlags resolves the configuration from args, applies environment
// overrides for flags not given explicitly, fills adaptive defaults and
// validates the result. Usage and parse errors are written to output.
func ParseFlags(args []string, output io.Writer) (AppConfig, error) {
	var cfg AppConfig
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(output)
	RegisterFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration and returns a ConfigError
// describing the first problem found.
func (c AppConfig) Validate() error {
	if c.Algo != "all" {
		if _, err := fibonacci.NewDefaultFactory().Get(c.Algo); err != nil {
			return apperrors.NewConfigError("invalid --algo: %v", err)
		}
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("invalid --timeout %v: must be positive", c.Timeout)
	}
	switch memory.GCMode(c.GCMode) {
	case memory.GCModeAuto, memory.GCModeAggressive, memory.GCModeDisabled:
	default:
		return apperrors.NewConfigError("invalid --gc-mode %q (choose from auto, aggressive, disabled)", c.GCMode)
	}
	if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
		return apperrors.NewConfigError("invalid --memory-limit: %v", err)
	}
	if !containsString(validThemes, c.Theme) {
		return apperrors.NewConfigError("invalid --theme %q (choose from %s)", c.Theme, strings.Join(validThemes, ", "))
	}
	if c.Completion != "" && !containsString(validCompletions, c.Completion) {
		return apperrors.NewConfigError("invalid --completion %q (choose from %s)", c.Completion, strings.Join(validCompletions, ", "))
	}
	return nil
}

// ToCalculationOptions maps the configuration to the calculator options
// shared by every strategy in the run.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{
		NaiveLimit:      c.NaiveLimit,
		ArenaAllocation: true,
	}
}

// MemoryLimitBytes returns the resolved memory limit in bytes, zero meaning
// no limit. Validate has already established that the string parses.
func (c AppConfig) MemoryLimitBytes() uint64 {
	limit, err := memory.ParseMemoryLimit(c.MemoryLimit)
	if err != nil {
		return 0
	}
	return limit
}

// Summary renders the effective configuration for the verbose banner.
func (c AppConfig) Summary() string {
	mode := "sequential"
	if c.Parallel {
		mode = "parallel"
	}
	return fmt.Sprintf("n=%d algo=%s mode=%s timeout=%v gc=%s", c.N, c.Algo, mode, c.Timeout, c.GCMode)
}

func containsString(values []string, v string) bool {
	i := sort.SearchStrings(values, v)
	return i < len(values) && values[i] == v
}
