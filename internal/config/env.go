package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnvOverrides copies FIBBENCH_* environment values into fields whose
// flags were absent from the command line, giving flags priority over the
// environment and the environment priority over defaults. Unparseable values
// are ignored so a stray variable cannot fail the run.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	env := envSource{given: flagsGiven(fs)}

	env.int64(&cfg.N, "N", "n")
	env.int64(&cfg.NaiveLimit, "NAIVE_LIMIT", "naive-limit")

	env.duration(&cfg.Timeout, "TIMEOUT", "timeout")

	env.str(&cfg.Algo, "ALGO", "algo")
	env.str(&cfg.OutputFile, "OUTPUT", "output", "o")
	env.str(&cfg.MemoryLimit, "MEMORY_LIMIT", "memory-limit")
	env.str(&cfg.GCMode, "GC_MODE", "gc-mode")
	env.str(&cfg.Serve, "SERVE", "serve")
	env.str(&cfg.Theme, "THEME", "theme")

	env.boolean(&cfg.Verbose, "VERBOSE", "v", "verbose")
	env.boolean(&cfg.Details, "DETAILS", "d", "details")
	env.boolean(&cfg.Quiet, "QUIET", "quiet", "q")
	env.boolean(&cfg.ShowValue, "CALCULATE", "calculate", "c")
	env.boolean(&cfg.Parallel, "PARALLEL", "parallel")
	env.boolean(&cfg.TUI, "TUI", "tui")
	env.boolean(&cfg.REPL, "REPL", "repl", "i")
}

// flagsGiven collects the names of all flags that appeared on the command
// line. flag.Visit walks only flags that were explicitly set.
func flagsGiven(fs *flag.FlagSet) map[string]bool {
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
	return given
}

// envSource reads prefixed environment variables for settings the command
// line left untouched.
type envSource struct {
	given map[string]bool
}

// lookup returns the environment value for key unless one of the flag
// aliases was given explicitly. Aliased flags share one setting, so either
// spelling suppresses the override.
func (e envSource) lookup(key string, aliases ...string) (string, bool) {
	for _, name := range aliases {
		if e.given[name] {
			return "", false
		}
	}
	v := os.Getenv(EnvPrefix + key)
	return v, v != ""
}

func (e envSource) str(dst *string, key string, aliases ...string) {
	if v, ok := e.lookup(key, aliases...); ok {
		*dst = v
	}
}

func (e envSource) int64(dst *int64, key string, aliases ...string) {
	if v, ok := e.lookup(key, aliases...); ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

func (e envSource) duration(dst *time.Duration, key string, aliases ...string) {
	if v, ok := e.lookup(key, aliases...); ok {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func (e envSource) boolean(dst *bool, key string, aliases ...string) {
	if v, ok := e.lookup(key, aliases...); ok {
		*dst = parseBoolEnv(v, *dst)
	}
}

// parseBoolEnv maps the accepted boolean spellings to their value: "true",
// "1" and "yes" are true, "false", "0" and "no" are false, case-insensitive.
// Any other spelling returns defaultVal unchanged.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultVal
	}
}
