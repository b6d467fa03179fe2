package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/progress"
)

// CalculationResult is the outcome of a single strategy run, the unit both
// executors produce and every presenter consumes.
type CalculationResult struct {
	// Name is the call-style name of the strategy (e.g., "BottomUp").
	Name string
	// Result is the computed Fibonacci number, nil when the run failed.
	Result *big.Int
	// Duration is the wall-clock time the run took.
	Duration time.Duration
	// Err is the failure that produced a nil Result, if any.
	Err error
}

// PresentationOptions carries the flags a presenter needs to decide what to
// show for one result.
type PresentationOptions struct {
	N         int64
	Verbose   bool
	Details   bool
	ShowValue bool
	// Memo is the table dumped after the strategy lines, selected from the
	// executed calculators by the caller. A nil table suppresses the dump.
	Memo *fibonacci.MemoTable
}

// ProgressReporter consumes the updates calculators emit while running. The
// executors only ever talk to this interface, so the same run can feed a
// spinner, the dashboard bridge, or nothing at all.
type ProgressReporter interface {
	// DisplayProgress consumes updates until the channel is closed. The
	// executor starts it on its own goroutine and waits on wg, so
	// implementations must call wg.Done when the channel drains.
	DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a plain function into a ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, updates, numCalculators, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Quiet mode runs with it.
type NullProgressReporter struct{}

// DisplayProgress discards updates until the channel closes.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
	}
}

// ResultPresenter renders finished results. The CLI and the dashboard bridge
// each provide one; the orchestrator never formats anything itself.
type ResultPresenter interface {
	// PresentStrategyLines displays one line per strategy announcing the
	// value it computed. Results arrive in execution order, before any
	// sorting by elapsed time.
	PresentStrategyLines(results []CalculationResult, n int64, out io.Writer)

	// PresentMemoTable displays the final memo table left by the run.
	// Implementations must tolerate a nil table.
	PresentMemoTable(memo *fibonacci.MemoTable, out io.Writer)

	// PresentComparisonTable displays the timing ranking. Results arrive
	// sorted ascending by elapsed time with failed runs last.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays one finished result with whatever detail the
	// options ask for.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats elapsed times for display. Presenters implement
// it so the orchestrator can log durations in the presenter's own notation.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler turns a failed run into user-facing output and an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
