package fibonacci

import (
	"context"
	"fmt"
	"math/big"
)

// BottomUpTable computes F(n) by tabulation: seed the base slots, then fill
// the memo table in ascending index order until slot n holds the answer.
// Same work as MemoizedRecursive, no recursion, and the table fill order is
// the access order, which is as cache-friendly as big.Int arithmetic gets.
type BottomUpTable struct{}

var _ coreCalculator = (*BottomUpTable)(nil)

// Name returns "BottomUp".
func (c *BottomUpTable) Name() string { return "BottomUp" }

// Description returns the long form with complexity notes.
func (c *BottomUpTable) Description() string {
	return "Bottom-Up (Tabulation, O(n) Time, O(n) Space)"
}

// CalculateCore fills slots 0 through n in order and returns slot n. A
// finished run leaves every slot populated, the same table a memoized run
// produces for the same n.
func (c *BottomUpTable) CalculateCore(ctx context.Context, reportProgress ProgressCallback, memo *MemoTable, n int64, opts Options) (*big.Int, error) {
	tracker := NewStepTracker(reportProgress, CalcLinearWork(n))
	seedBaseSlots(memo, n)

	for i := int64(3); i <= n; i++ {
		if i%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("bottom-up fill canceled at index %d: %w", i, err)
			}
		}
		left, _ := memo.Get(i - 1)
		right, _ := memo.Get(i - 2)
		v := memo.AllocValue(i)
		v.Add(left, right)
		memo.Set(i, v)
		tracker.Step(float64(i - 1))
	}

	tracker.Done()
	result, _ := memo.Get(n)
	return result, nil
}
