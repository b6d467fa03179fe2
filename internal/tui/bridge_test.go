package tui

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/progress"
)

// Before SetProgram runs, Send must silently drop messages. Every test in
// this file relies on that, since none of them starts a real program.
func TestProgramRef_Send(t *testing.T) {
	t.Run("nil program drops the message", func(t *testing.T) {
		ref := &programRef{}
		ref.Send(ProgressMsg{Value: 0.5})
	})

	t.Run("concurrent senders", func(t *testing.T) {
		ref := &programRef{}
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ref.Send(ProgressMsg{Value: float64(i) / 100})
			}(i)
		}
		wg.Wait()
	})
}

// TestTUIProgressReporter_DisplayProgress runs the reporter against closed,
// pre-filled channels. It must drain every variant completely and release
// the wait group, including the degenerate zero-calculator case where no
// aggregator exists.
func TestTUIProgressReporter_DisplayProgress(t *testing.T) {
	cases := []struct {
		name           string
		updates        []progress.ProgressUpdate
		numCalculators int
	}{
		{
			name: "single calculator",
			updates: []progress.ProgressUpdate{
				{CalculatorIndex: 0, Value: 0.25},
				{CalculatorIndex: 0, Value: 0.50},
				{CalculatorIndex: 0, Value: 0.75},
				{CalculatorIndex: 0, Value: 1.00},
			},
			numCalculators: 1,
		},
		{
			name: "interleaved calculators",
			updates: []progress.ProgressUpdate{
				{CalculatorIndex: 0, Value: 0.25},
				{CalculatorIndex: 1, Value: 0.50},
				{CalculatorIndex: 0, Value: 0.75},
				{CalculatorIndex: 1, Value: 1.00},
			},
			numCalculators: 2,
		},
		{
			name:           "zero calculators falls back to draining",
			updates:        []progress.ProgressUpdate{{CalculatorIndex: 0, Value: 0.5}},
			numCalculators: 0,
		},
		{
			name:           "empty channel",
			numCalculators: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ch := make(chan progress.ProgressUpdate, len(tc.updates)+1)
			for _, u := range tc.updates {
				ch <- u
			}
			close(ch)

			reporter := &TUIProgressReporter{ref: &programRef{}}
			var wg sync.WaitGroup
			wg.Add(1)
			reporter.DisplayProgress(&wg, ch, tc.numCalculators, nil)
			wg.Wait()

			if _, open := <-ch; open {
				t.Error("reporter left updates in the channel")
			}
		})
	}
}

// The presenter methods fire messages at the program; with none installed
// they must still accept every report group, including a nil memo table.
func TestTUIResultPresenter_ReportGroups(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	results := []orchestration.CalculationResult{
		{Name: "Iterative", Result: big.NewInt(55), Duration: 100 * time.Millisecond},
		{Name: "NaiveRecursive", Err: errors.New("limit exceeded")},
	}

	t.Run("strategy lines", func(t *testing.T) {
		presenter.PresentStrategyLines(results, 10, nil)
	})

	t.Run("memo table", func(t *testing.T) {
		memo := fibonacci.NewMemoTable()
		memo.Reset(5, false)
		presenter.PresentMemoTable(memo, nil)
		presenter.PresentMemoTable(nil, nil)
	})

	t.Run("timing ranking", func(t *testing.T) {
		presenter.PresentComparisonTable(results, nil)
	})

	t.Run("final result", func(t *testing.T) {
		opts := orchestration.PresentationOptions{N: 10, Verbose: true, Details: true, ShowValue: true}
		presenter.PresentResult(results[0], opts, nil)
	})
}

// TestTUIResultPresenter_HandleError pins the exit codes the dashboard
// propagates when a run fails. They must match what the CLI would return
// for the same error.
func TestTUIResultPresenter_HandleError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
	}

	presenter := &TUIResultPresenter{ref: &programRef{}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := presenter.HandleError(tc.err, time.Second, nil); got != tc.want {
				t.Errorf("HandleError(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

// TestTUIResultPresenter_FormatDuration pins the notation shared with the
// CLI presenter, so both surfaces print the same elapsed times.
func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0µs"},
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{2*time.Second + 500*time.Millisecond, "2.5s"},
		{3 * time.Minute, "3m0s"},
	}

	presenter := &TUIResultPresenter{ref: &programRef{}}
	for _, tc := range cases {
		if got := presenter.FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
