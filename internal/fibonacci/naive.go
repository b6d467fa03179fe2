package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// NaiveRecursive computes F(n) by evaluating the recurrence directly, with
// no memoization. Every call for n >= 2 spawns two more, so the call tree
// has 2*F(n+1)-1 nodes and the runtime grows by a factor of φ ≈ 1.618 per
// index. It exists to be measured against the linear strategies; the
// NaiveLimit option refuses indices where that demonstration would run for
// hours.
type NaiveRecursive struct{}

var _ coreCalculator = (*NaiveRecursive)(nil)

// Name returns "NaiveRecursive".
func (c *NaiveRecursive) Name() string { return "NaiveRecursive" }

// Description returns the long form with complexity notes.
func (c *NaiveRecursive) Description() string {
	return "Naive Recursive (Direct Recurrence, O(φⁿ) Time, O(n) Stack)"
}

// CalculateCore validates n against the naive limit and walks the call
// tree. The memo table is deliberately ignored; filling it is exactly what
// separates this strategy from the memoized one.
func (c *NaiveRecursive) CalculateCore(ctx context.Context, reportProgress ProgressCallback, memo *MemoTable, n int64, opts Options) (*big.Int, error) {
	if opts.NaiveLimit >= 0 && n > opts.NaiveLimit {
		return nil, apperrors.ValidationError{
			Field: "n",
			Message: fmt.Sprintf("index %d exceeds the naive recursion limit %d; raise --naive-limit to wait it out",
				n, opts.NaiveLimit),
		}
	}

	run := &naiveRun{
		ctx:     ctx,
		tracker: NewStepTracker(reportProgress, CalcRecursiveWork(n)),
	}
	result, err := run.fib(n)
	if err != nil {
		return nil, err
	}
	run.tracker.Done()
	return result, nil
}

// naiveRun carries the per-run recursion state: the cancellation context
// and a call counter that doubles as the progress measure.
type naiveRun struct {
	ctx     context.Context
	tracker *StepTracker
	calls   int64
}

// fib is the textbook recursion. Context checks happen every
// NaiveCancelCheckInterval calls rather than on each one; at millions of
// calls per second a per-call check would dominate the runtime being
// demonstrated.
func (r *naiveRun) fib(n int64) (*big.Int, error) {
	r.calls++
	if r.calls%NaiveCancelCheckInterval == 0 {
		if err := r.ctx.Err(); err != nil {
			return nil, fmt.Errorf("naive recursion canceled after %d calls: %w", r.calls, err)
		}
		r.tracker.Step(float64(r.calls))
	}

	if n < 2 {
		return big.NewInt(n), nil
	}

	left, err := r.fib(n - 1)
	if err != nil {
		return nil, err
	}
	right, err := r.fib(n - 2)
	if err != nil {
		return nil, err
	}
	// left is uniquely owned by this frame, so in-place addition is safe.
	return left.Add(left, right), nil
}
