package progress

import "math"

// ProgressReportThreshold is the minimum progress delta between two reports.
// Updates closer together than this are dropped so tight loops do not flood
// the progress channel.
const ProgressReportThreshold = 0.01

// phi is the golden ratio, the growth factor of the sequence. It drives the
// work estimate for the unmemoized recursive strategy.
const phi = 1.618033988749894848

// ProgressUpdate describes one progress report from a running strategy.
type ProgressUpdate struct {
	// CalculatorIndex identifies which strategy the update belongs to.
	CalculatorIndex int
	// Value is the completed fraction in [0, 1].
	Value float64
}

// ProgressCallback receives a completed fraction in [0, 1].
type ProgressCallback func(progress float64)

// CalcLinearWork returns the number of iteration steps an O(n) strategy
// performs for index n: one addition for each of F(2) through F(n). Indices
// below the first addition take a single step so callers never divide by
// zero.
func CalcLinearWork(n int64) float64 {
	if n < 2 {
		return 1
	}
	return float64(n - 1)
}

// CalcRecursiveWork estimates the number of calls the naive recursive
// strategy makes for index n: the call tree has 2*F(n+1)-1 nodes, and
// F(k) ≈ φ^k/√5.
func CalcRecursiveWork(n int64) float64 {
	if n <= 2 {
		return 1
	}
	return 2*math.Pow(phi, float64(n+1))/math.Sqrt(5) - 1
}

// StepTracker throttles per-step progress reports against a known total.
// It forwards to the callback only when the fraction advanced by at least
// ProgressReportThreshold since the last report. Done always reports 1.0.
type StepTracker struct {
	reporter     ProgressCallback
	total        float64
	lastReported float64
}

// NewStepTracker creates a tracker for totalWork steps. A nil reporter
// yields a tracker whose methods are no-ops, so call sites stay branch-free.
func NewStepTracker(reporter ProgressCallback, totalWork float64) *StepTracker {
	if totalWork <= 0 {
		totalWork = 1
	}
	return &StepTracker{reporter: reporter, total: totalWork}
}

// Step reports the fraction completed/total if it advanced enough.
func (t *StepTracker) Step(completed float64) {
	if t.reporter == nil {
		return
	}
	fraction := completed / t.total
	if fraction > 1 {
		fraction = 1
	}
	if fraction-t.lastReported < ProgressReportThreshold {
		return
	}
	t.lastReported = fraction
	t.reporter(fraction)
}

// Done reports completion unconditionally.
func (t *StepTracker) Done() {
	if t.reporter == nil {
		return
	}
	t.lastReported = 1
	t.reporter(1.0)
}
