package fibonacci

import (
	"context"
	"fmt"
	"math/big"
)

// IterativeAddition computes F(n) with the classic two-variable shuffle:
// repeated addition carrying only the last two values of the sequence. It is
// the O(1)-space baseline the other strategies are compared against, and the
// only one that leaves the memo table untouched after the reset.
type IterativeAddition struct{}

var _ coreCalculator = (*IterativeAddition)(nil)

// Name returns "Iterative".
func (c *IterativeAddition) Name() string { return "Iterative" }

// Description returns the long form with complexity notes.
func (c *IterativeAddition) Description() string {
	return "Iterative (Pairwise Addition, O(n) Time, O(1) Space)"
}

// CalculateCore runs the addition loop. The loop invariant going into
// iteration i is a = F(i-2), b = F(i-1); each pass adds and swaps so that
// b = F(i) on exit.
func (c *IterativeAddition) CalculateCore(ctx context.Context, reportProgress ProgressCallback, memo *MemoTable, n int64, opts Options) (*big.Int, error) {
	tracker := NewStepTracker(reportProgress, CalcLinearWork(n))

	if n == 0 {
		tracker.Done()
		return big.NewInt(0), nil
	}

	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
		if i%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("iterative loop canceled at index %d: %w", i, err)
			}
			tracker.Step(float64(i - 1))
		}
	}

	tracker.Done()
	return b, nil
}
