package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/fibonacci/memory"
	"github.com/agbru/fibbench/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the target Fibonacci index, timeout, environment details,
// and the resource settings for the run.
//
// Parameters:
//   - cfg: the resolved run configuration.
//   - out: destination for the banner.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %s under a %s timeout.\n",
		tint(ui.ColorMagenta(), fmt.Sprintf("F(%d)", cfg.N)), tint(ui.ColorYellow(), cfg.Timeout.String()))
	fmt.Fprintf(out, "Environment: %s logical processors, %s.\n",
		tint(ui.ColorCyan(), fmt.Sprintf("%d", runtime.NumCPU())), tint(ui.ColorCyan(), runtime.Version()))

	limit := "none"
	if bytes := cfg.MemoryLimitBytes(); bytes > 0 {
		limit = memory.FormatBytes(bytes)
	}
	fmt.Fprintf(out, "Resources: memory limit %s, GC mode %s, naive strategy capped at %s.\n",
		tint(ui.ColorCyan(), limit),
		tint(ui.ColorCyan(), cfg.GCMode),
		tint(ui.ColorCyan(), fmt.Sprintf("F(%d)", cfg.NaiveLimit)))
}

// PrintExecutionMode displays the execution mode (single strategy vs
// comparison) and whether the comparison runs sequentially or in parallel.
//
// Parameters:
//   - calculators: the strategies that will run.
//   - parallel: whether the comparison runs strategies concurrently.
//   - out: destination for the banner.
func PrintExecutionMode(calculators []fibonacci.Calculator, parallel bool, out io.Writer) {
	var mode string
	switch {
	case len(calculators) > 1 && parallel:
		mode = "Parallel comparison of all strategies"
	case len(calculators) > 1:
		mode = "Sequential comparison of all strategies"
	default:
		mode = "Single calculation with the " + tint(ui.ColorGreen(), calculators[0].Name()) + " strategy"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
