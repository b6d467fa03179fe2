package tui

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/progress"
)

// programRef hands the bridge goroutines a stable handle on the running
// tea.Program. bubbletea copies the model on every Update, so the model
// itself cannot carry the program pointer; this shared cell can.
type programRef struct {
	p atomic.Pointer[tea.Program]
}

// SetProgram installs the program the bridge should deliver messages to.
func (r *programRef) SetProgram(p *tea.Program) {
	r.p.Store(p)
}

// Send delivers msg to the program, or drops it when none is installed yet.
func (r *programRef) Send(msg tea.Msg) {
	if p := r.p.Load(); p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter feeds the executors' progress stream into the update
// loop. Each raw update passes through a progress aggregator first, so the
// dashboard always sees the averaged figure alongside the per-strategy one.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress consumes updates until the channel closes, forwarding each
// one as a ProgressMsg and finishing with a ProgressDoneMsg.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.ProgressUpdate, numCalculators int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}

	for u := range updates {
		t.ref.Send(ProgressMsg(agg.Update(u)))
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter turns the presenter callbacks into messages, so the
// logs panel receives the same report groups the CLI would print.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentStrategyLines sends the per-strategy result lines to the TUI.
func (t *TUIResultPresenter) PresentStrategyLines(results []orchestration.CalculationResult, n int64, _ io.Writer) {
	t.ref.Send(StrategyLinesMsg{Results: results, N: n})
}

// PresentMemoTable sends the selected memo table to the TUI.
func (t *TUIResultPresenter) PresentMemoTable(memo *fibonacci.MemoTable, _ io.Writer) {
	t.ref.Send(MemoTableMsg{Memo: memo})
}

// PresentComparisonTable sends the timing ranking to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentResult sends the fastest valid result to the TUI.
func (t *TUIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Opts: opts})
}

// FormatDuration renders durations the way the CLI report does, keeping
// both frontends consistent.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError forwards the failure to the dashboard and maps it to an exit
// code. The textual report goes to io.Discard; the logs panel carries the
// message instead.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
