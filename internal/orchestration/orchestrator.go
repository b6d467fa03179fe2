package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// progressBufferMultiplier is the number of buffered slots each calculator
// gets in the shared progress channel.
const progressBufferMultiplier = 5

// tracerName is the instrumentation scope for spans emitted by this package.
const tracerName = "github.com/agbru/fibbench/internal/orchestration"

// progressPipe owns the channel and reporter goroutine shared by one
// comparison run.
type progressPipe struct {
	ch chan fibonacci.ProgressUpdate
	wg sync.WaitGroup
}

func startProgress(reporter ProgressReporter, numCalculators int, out io.Writer) *progressPipe {
	pipe := &progressPipe{ch: make(chan fibonacci.ProgressUpdate, numCalculators*progressBufferMultiplier)}
	pipe.wg.Add(1)
	go reporter.DisplayProgress(&pipe.wg, pipe.ch, numCalculators, out)
	return pipe
}

// finish closes the channel and waits for the reporter to drain it. No
// calculator may send after this returns.
func (p *progressPipe) finish() {
	close(p.ch)
	p.wg.Wait()
}

// ExecuteCalculations runs the given calculators one at a time, in order.
//
// Sequential execution is the default comparison mode: each strategy runs to
// completion before the next begins, so the wall-clock reading taken around
// one strategy is never skewed by a sibling competing for the CPU. Progress
// updates still flow through a single channel consumed by the reporter
// goroutine, which is shut down only after every calculator has finished.
//
// Parameters:
//   - ctx: cancellation and deadline control for the whole run.
//   - calculators: the strategies to run, in report order.
//   - n: the sequence index every strategy computes.
//   - opts: calculation options shared by all strategies.
//   - progressReporter: receives live updates; NullProgressReporter silences them.
//   - out: destination the reporter renders to.
//
// Returns:
//   - []CalculationResult: one result per calculator, in run order.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n int64, opts fibonacci.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	pipe := startProgress(progressReporter, len(calculators), out)

	results := make([]CalculationResult, len(calculators))
	for i, calculator := range calculators {
		results[i] = runOne(ctx, calculator, pipe.ch, i, n, opts)
	}

	pipe.finish()
	return results
}

// ExecuteCalculationsParallel runs the given calculators concurrently.
//
// Every calculator owns its memo table, so the strategies never share mutable
// state and can safely run side by side. Timings taken in this mode reflect
// contention between the strategies and are indicative only; the sequential
// ExecuteCalculations is the mode whose rankings the report stands behind.
func ExecuteCalculationsParallel(ctx context.Context, calculators []fibonacci.Calculator, n int64, opts fibonacci.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	pipe := startProgress(progressReporter, len(calculators), out)

	results := make([]CalculationResult, len(calculators))
	for i, calculator := range calculators {
		g.Go(func() error {
			results[i] = runOne(ctx, calculator, pipe.ch, i, n, opts)
			return nil
		})
	}

	g.Wait()
	pipe.finish()
	return results
}

// runOne times a single strategy and wraps it in a telemetry span. The span
// is a no-op unless the process installed a tracer provider.
func runOne(ctx context.Context, calculator fibonacci.Calculator, progressChan chan<- fibonacci.ProgressUpdate, calcIndex int, n int64, opts fibonacci.Options) CalculationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fibonacci.calculate")
	span.SetAttributes(
		attribute.String("fibonacci.strategy", calculator.Name()),
		attribute.Int64("fibonacci.n", n),
	)
	defer span.End()

	start := time.Now()
	res, err := calculator.Calculate(ctx, progressChan, calcIndex, n, opts)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return CalculationResult{Name: calculator.Name(), Result: res, Duration: elapsed, Err: err}
}

// AnalyzeComparisonResults turns the collected results into the comparison
// report and an exit code.
//
// The strategy lines and the memo dump come first, in execution order. The
// results are then sorted by elapsed time (failed runs last, ties keeping
// execution order) for the timing ranking, successful results are checked
// for agreement, and the overall outcome is reduced to an exit code.
//
// Parameters:
//   - results: the collected results, in execution order.
//   - presOpts: presentation options, including the memo table to dump.
//   - presenter: renders the report sections.
//   - errorHandler: maps the first error to an exit code when nothing succeeded.
//   - out: destination for the report.
//
// Returns:
//   - int: an exit code, zero on full success.
func AnalyzeComparisonResults(results []CalculationResult, presOpts PresentationOptions, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	presenter.PresentStrategyLines(results, presOpts.N, out)
	presenter.PresentMemoTable(presOpts.Memo, out)

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := &results[i], &results[j]
		if (ri.Err == nil) != (rj.Err == nil) {
			return ri.Err == nil
		}
		return ri.Duration < rj.Duration
	})

	var reference *CalculationResult
	var firstErr error
	succeeded := 0
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		succeeded++
		if reference == nil {
			reference = r
		}
	}

	presenter.PresentComparisonTable(results, out)

	if succeeded == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. Every strategy returned an error.\n")
		return errorHandler.HandleError(firstErr, 0, out)
	}

	for i := range results {
		if results[i].Err == nil && results[i].Result.Cmp(reference.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree on the computed value.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if presOpts.Verbose {
		fmt.Fprintf(out, "\nGlobal Status: Success. All strategies agree on the value.\n")
	}
	presenter.PresentResult(*reference, presOpts, out)
	return apperrors.ExitSuccess
}
