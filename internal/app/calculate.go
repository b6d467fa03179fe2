package app

import (
	"context"
	"fmt"
	"io"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/fibbench/internal/cli"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci/memory"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/ui"
)

// runCalculate orchestrates the comparison run: budget check, lifecycle
// setup, strategy execution and the report.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if code := a.checkMemoryBudget(out); code != apperrors.ExitSuccess {
		return code
	}

	ctx, cancel := a.withRunContext(ctx)
	defer cancel()

	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	// The default report carries only the strategy lines, the memo dump and
	// the timing ranking. Banners and live progress are verbose extras.
	showProgress := a.Config.Verbose && !a.Config.Quiet
	if showProgress {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculators, a.Config.Parallel, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if showProgress {
		progressReporter = cli.CLIProgressReporter{}
	} else {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	gc := memory.NewGCController(a.Config.GCMode, a.Config.N)
	gc.SetLogger(a.zlog)

	opts := a.Config.ToCalculationOptions()

	gc.Begin()
	var results []orchestration.CalculationResult
	if a.Config.Parallel {
		results = orchestration.ExecuteCalculationsParallel(ctx, calculators, a.Config.N, opts, progressReporter, progressOut)
	} else {
		results = orchestration.ExecuteCalculations(ctx, calculators, a.Config.N, opts, progressReporter, progressOut)
	}
	gc.End()

	reportOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		ShowValue: a.Config.ShowValue,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		Memo:      orchestration.SelectMemoForDump(calculators, a.Config.N),
	}
	presenter := cli.CLIResultPresenter{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet, Log: a.Log}
	exitCode := orchestration.AnalyzeComparisonResults(results, reportOpts, presenter, presenter, out)

	if a.Config.Details && !a.Config.Quiet {
		a.displayRunStats(out)
	}

	if exitCode == apperrors.ExitSuccess && a.Config.OutputFile != "" {
		if err := a.saveBestResult(results, out); err != nil {
			return apperrors.ExitErrorGeneric
		}
	}

	return exitCode
}

// checkMemoryBudget refuses the run when the estimated memo table footprint
// exceeds the configured limit. A zero limit disables the check.
func (a *Application) checkMemoryBudget(out io.Writer) int {
	limit := a.Config.MemoryLimitBytes()
	if limit == 0 {
		return apperrors.ExitSuccess
	}

	est := memory.EstimateMemoTableBytes(a.Config.N)
	if est > limit {
		memErr := apperrors.MemoryError{Requested: est, Available: availableMemory(), Limit: limit}
		fmt.Fprintf(a.ErrWriter, "Refusing to run: %v\n", memErr)
		fmt.Fprintf(a.ErrWriter, "The %s; the limit is %s. Raise --memory-limit or lower -n.\n",
			memory.FormatMemoryEstimate(a.Config.N), memory.FormatBytes(limit))
		return apperrors.ExitErrorConfig
	}

	if a.Config.Verbose && !a.Config.Quiet {
		fmt.Fprintf(out, "Memory budget: %s (limit %s).\n",
			memory.FormatMemoryEstimate(a.Config.N), memory.FormatBytes(limit))
	}
	return apperrors.ExitSuccess
}

// availableMemory reads the host's currently available RAM, zero when the
// probe fails.
func availableMemory() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0
	}
	return vm.Available
}

// displayRunStats appends process-level memory and CPU accounting to the
// report in details mode.
func (a *Application) displayRunStats(out io.Writer) {
	snap := metrics.ReadMemory()
	cli.DisplayMemoryStats(snap.HeapAlloc, snap.TotalAlloc, snap.NumGC, snap.PauseTotalNs, out)
	if times, ok := metrics.ProcessCPUTimes(); ok {
		cli.DisplayCPUStats(times, out)
	}
}

// saveBestResult writes the fastest successful result to the output file.
func (a *Application) saveBestResult(results []orchestration.CalculationResult, out io.Writer) error {
	best := findBestResult(results)
	if best == nil {
		return nil
	}

	fileCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		ShowValue:  a.Config.ShowValue,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		Quiet:      a.Config.Quiet,
	}
	if err := cli.WriteResultToFile(best.Result, a.Config.N, best.Duration, best.Name, fileCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Saving the result failed: %v\n", err)
		return err
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return nil
}

// findBestResult returns the fastest successful result, nil when every
// strategy failed.
func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if best == nil || r.Duration < best.Duration {
			best = r
		}
	}
	return best
}
