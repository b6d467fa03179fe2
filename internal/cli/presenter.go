package cli

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/fibonacci/memory"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/progress"
	"github.com/agbru/fibbench/internal/ui"
)

// MemoDumpSlots is the number of memo slots shown before the dump is elided.
const MemoDumpSlots = 64

// CLIProgressReporter drives the terminal spinner and progress bar while
// strategies run.
type CLIProgressReporter struct{}

// DisplayProgress forwards to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, updates, numCalculators, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// The strategy lines, memo dump and timing ranking are printed without color
// so the report stays stable for scripts and golden files; decorations are
// reserved for the verbose summary.
type CLIResultPresenter struct {
	// Verbose adds the decorated comparison summary after the ranking.
	Verbose bool
	// Quiet suppresses everything except the bare result value.
	Quiet bool
	// Log receives error records from HandleError; may be nil.
	Log logging.Logger
}

var (
	_ orchestration.ProgressReporter  = CLIProgressReporter{}
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentStrategyLines writes one line per strategy in execution order,
// announcing the value it found. Failed strategies report their error
// instead.
func (p CLIResultPresenter) PresentStrategyLines(results []orchestration.CalculationResult, n int64, out io.Writer) {
	if p.Quiet {
		return
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "%s%s() failed: %v%s\n", ui.ColorRed(), res.Name, res.Err, ui.ColorReset())
			continue
		}
		fmt.Fprintf(out, "%s() found that the %dth fibonacci number is %s\n", res.Name, n, strategyValue(res.Result))
	}
}

// strategyValue renders a result for the per-strategy line: plain decimal,
// with only the edges of very large values.
func strategyValue(v *big.Int) string {
	if v == nil {
		return "<nil>"
	}
	s := v.String()
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:DisplayEdges], s[len(s)-DisplayEdges:], len(s))
}

// PresentMemoTable writes the memo table left behind by the run. Long tables
// are elided around the middle; a nil table prints nothing.
func (p CLIResultPresenter) PresentMemoTable(memo *fibonacci.MemoTable, out io.Writer) {
	if p.Quiet || memo == nil {
		return
	}
	fmt.Fprintf(out, "Memo table (len=%d): %s\n", memo.Len(), format.FormatMemoSlots(memo.Values(), MemoDumpSlots))
}

// PresentComparisonTable writes the timing ranking, one line per successful
// strategy in ascending order of elapsed time. In verbose mode the decorated
// summary follows.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	if p.Quiet {
		return
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fmt.Fprintf(out, "%s %s\n", format.FormatSeconds(res.Duration), res.Name)
	}
	if p.Verbose {
		presentComparisonSummary(results, out)
	}
}

// presentComparisonSummary renders the decorated summary table. Column
// widths are computed on the plain text, so ANSI codes do not skew the
// padding.
func presentComparisonSummary(results []orchestration.CalculationResult, out io.Writer) {
	type row struct {
		name, duration, status string
	}

	nameW, durationW := len("Strategy"), len("Duration")
	rows := make([]row, 0, len(results))
	for _, res := range results {
		r := row{name: res.Name, duration: summaryDuration(res.Duration)}
		if res.Err != nil {
			r.status = tint(ui.ColorRed(), fmt.Sprintf("❌ Failure (%v)", res.Err))
		} else {
			r.status = tint(ui.ColorGreen(), "✅ Success")
		}
		nameW = max(nameW, len(r.name))
		durationW = max(durationW, len(r.duration))
		rows = append(rows, r)
	}

	pad := func(s string, width int) string {
		return strings.Repeat(" ", width-len(s))
	}

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	fmt.Fprintf(out, "%s%s   %s%s   %s\n",
		tint(ui.ColorUnderline(), "Strategy"), pad("Strategy", nameW),
		tint(ui.ColorUnderline(), "Duration"), pad("Duration", durationW),
		tint(ui.ColorUnderline(), "Status"))
	for _, r := range rows {
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			tint(ui.ColorBlue(), r.name), pad(r.name, nameW),
			tint(ui.ColorYellow(), r.duration), pad(r.duration, durationW),
			r.status)
	}
}

// summaryDuration renders a duration for the summary table, marking timings
// below the clock resolution.
func summaryDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentResult displays the final calculation result. In quiet mode only
// the bare value is printed; otherwise output appears only when one of the
// verbose, details or show-value switches asks for it.
func (p CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if p.Quiet {
		DisplayQuietResult(out, result.Result, opts.N, result.Duration)
		return
	}
	if !opts.Verbose && !opts.Details && !opts.ShowValue {
		return
	}
	DisplayResult(result.Result, opts.N, result.Duration, opts.Verbose, opts.Details, opts.ShowValue, out)
}

// FormatDuration renders an elapsed time the way the report lines do.
func (p CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints the failure diagnostics and maps the error to a
// process exit code.
func (p CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, p.Log)
}

// DisplayMemoryStats prints the post-run heap and GC counters.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	pause := "0ms (GC disabled)"
	if pauseTotalNs > 0 {
		pause = fmt.Sprintf("%.2fms", float64(pauseTotalNs)/1e6)
	}
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", memory.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", memory.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	fmt.Fprintf(out, "  GC pause total:  %s\n", pause)
}

// DisplayCPUStats shows process CPU accounting after a calculation.
func DisplayCPUStats(times metrics.CPUTimes, out io.Writer) {
	fmt.Fprintf(out, "\nCPU Stats:\n")
	fmt.Fprintf(out, "  User time:       %s\n", times.User.Round(time.Millisecond))
	fmt.Fprintf(out, "  System time:     %s\n", times.System.Round(time.Millisecond))
	if times.MaxRSS > 0 {
		fmt.Fprintf(out, "  Peak RSS:        %s\n", memory.FormatBytes(uint64(times.MaxRSS)))
	}
}
