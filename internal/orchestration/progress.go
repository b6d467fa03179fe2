package orchestration

import (
	"time"

	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/progress"
)

// AggregatedProgress is the outcome of folding one update into the aggregate.
type AggregatedProgress struct {
	// CalculatorIndex identifies the calculator the update came from.
	CalculatorIndex int
	// Value is that calculator's own progress fraction.
	Value float64
	// AverageProgress is the mean across all tracked calculators.
	AverageProgress float64
	// ETA estimates the remaining time from the smoothed progress rate.
	ETA time.Duration
}

// ProgressAggregator folds per-calculator progress updates into the figures a
// live view refreshes from: one average and a remaining-time estimate.
// CalculateAverage and GetETA come promoted from the embedded tracker, so a
// refresh tick between updates reads the same state the folds write.
type ProgressAggregator struct {
	*format.ProgressWithETA
	n int
}

// NewProgressAggregator creates an aggregator over the given number of
// calculators. Returns nil when there is nothing to track.
func NewProgressAggregator(count int) *ProgressAggregator {
	if count <= 0 {
		return nil
	}
	return &ProgressAggregator{
		ProgressWithETA: format.NewProgressWithETA(count),
		n:               count,
	}
}

// Update folds one progress update into the aggregate.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.UpdateWithETA(u.CalculatorIndex, u.Value)
	return AggregatedProgress{
		CalculatorIndex: u.CalculatorIndex,
		Value:           u.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// NumCalculators returns how many calculators are tracked.
func (a *ProgressAggregator) NumCalculators() int { return a.n }

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool { return a.n > 1 }

// DrainChannel consumes updates until the channel closes, for runs where the
// producers report but no live view is attached.
func DrainChannel(updates <-chan progress.ProgressUpdate) {
	for range updates {
	}
}
