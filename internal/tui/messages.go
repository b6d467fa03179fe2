package tui

import (
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
)

// Messages exchanged between the bridge goroutines, the background sampling
// commands and the bubbletea update loop.

// ProgressMsg carries one aggregated progress update from a running strategy.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// StrategyLinesMsg carries the per-strategy result lines in execution order,
// before any sorting by elapsed time.
type StrategyLinesMsg struct {
	Results []orchestration.CalculationResult
	N       int64
}

// MemoTableMsg carries the memo table selected for the post-run dump.
// A nil table means no strategy left a usable memo behind.
type MemoTableMsg struct {
	Memo *fibonacci.MemoTable
}

// ComparisonResultsMsg carries the timing ranking, sorted ascending by
// elapsed time with failed runs last.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the fastest valid result and the presentation
// options the run was configured with.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
	Opts   orchestration.PresentationOptions
}

// IndicatorsMsg carries freshly computed throughput indicators.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg reports a run that ended in error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh of the metrics and chart panels.
type TickMsg time.Time

// MemStatsMsg carries one sample of the Go runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries one sample of host-wide CPU and memory pressure.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg reports that the orchestration finished and what
// exit code the run would have produced in CLI mode. Generation guards
// against stale messages after a restart.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg reports that the session context ended.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
