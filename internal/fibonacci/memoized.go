package fibonacci

import (
	"context"
	"fmt"
	"math/big"
)

// MemoizedRecursive computes F(n) top-down: the same recursion as
// NaiveRecursive, but each computed value lands in the memo table and is
// never computed twice. Base slots are seeded before the descent, so a
// finished run leaves every slot in [0, n] populated, matching the table
// BottomUpTable produces for the same n.
type MemoizedRecursive struct{}

var _ coreCalculator = (*MemoizedRecursive)(nil)

// Name returns "MemoizedRecursive".
func (c *MemoizedRecursive) Name() string { return "MemoizedRecursive" }

// Description returns the long form with complexity notes.
func (c *MemoizedRecursive) Description() string {
	return "Memoized Recursive (Top-Down, O(n) Time, O(n) Space)"
}

// CalculateCore seeds the base slots and recurses. The recursion goes n
// frames deep before the memo starts answering, so very large n is bounded
// by goroutine stack growth rather than arithmetic.
func (c *MemoizedRecursive) CalculateCore(ctx context.Context, reportProgress ProgressCallback, memo *MemoTable, n int64, opts Options) (*big.Int, error) {
	tracker := NewStepTracker(reportProgress, CalcLinearWork(n))
	seedBaseSlots(memo, n)

	if v, ok := memo.Get(n); ok {
		tracker.Done()
		return v, nil
	}

	run := &memoizedRun{ctx: ctx, memo: memo, tracker: tracker}
	result, err := run.fib(n)
	if err != nil {
		return nil, err
	}
	tracker.Done()
	return result, nil
}

// seedBaseSlots writes F(0)=0, F(1)=1 and F(2)=1 into the table, clipped to
// the requested index. Seeding slot 2 up front means the recursion bottoms
// out on memo hits instead of special cases, and seeding slot 0 keeps the
// table identical to a bottom-up fill even though fib(n-1) descent alone
// would never touch it.
func seedBaseSlots(memo *MemoTable, n int64) {
	for k := int64(0); k <= n && k <= 2; k++ {
		v := memo.AllocValue(k)
		if k > 0 {
			v.SetInt64(1)
		}
		memo.Set(k, v)
	}
}

// memoizedRun carries the recursion state for one calculation.
type memoizedRun struct {
	ctx     context.Context
	memo    *MemoTable
	tracker *StepTracker
	writes  int64
}

// fib returns the memoized value for n, computing and storing it on a miss.
// Each miss fills exactly one slot, so the write counter is both the
// progress measure and the cadence for context checks.
func (r *memoizedRun) fib(n int64) (*big.Int, error) {
	if v, ok := r.memo.Get(n); ok {
		return v, nil
	}

	if r.writes%CancelCheckInterval == 0 {
		if err := r.ctx.Err(); err != nil {
			return nil, fmt.Errorf("memoized recursion canceled at index %d: %w", n, err)
		}
	}

	left, err := r.fib(n - 1)
	if err != nil {
		return nil, err
	}
	right, err := r.fib(n - 2)
	if err != nil {
		return nil, err
	}

	v := r.memo.AllocValue(n)
	v.Add(left, right)
	r.memo.Set(n, v)
	r.writes++
	r.tracker.Step(float64(r.writes))
	return v, nil
}
