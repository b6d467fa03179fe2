//go:build gmp

package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

// KeyGMP is the registry key for the GMP-backed strategy. Only defined when
// the gmp build tag is set, since the strategy needs cgo and libgmp-dev.
const KeyGMP = "gmp"

func init() {
	registerDefault(KeyGMP, func() Calculator { return NewCalculator(&GMPIterative{}) })
}

// GMPIterative is IterativeAddition on GNU MP integers instead of math/big.
// Same loop, same complexity; the comparison shows what a tuned C bignum
// library buys over the Go runtime's arithmetic at large n.
type GMPIterative struct{}

var _ coreCalculator = (*GMPIterative)(nil)

// Name returns "GMPIterative".
func (c *GMPIterative) Name() string { return "GMPIterative" }

// Description returns the long form with complexity notes.
func (c *GMPIterative) Description() string {
	return "GMP Iterative (libgmp via cgo, O(n) Time, O(1) Space)"
}

// CalculateCore runs the addition loop on gmp.Int values and converts the
// final value back to math/big for comparison with the other strategies.
// The memo table stays untouched; gmp values cannot live in big.Int slots.
func (c *GMPIterative) CalculateCore(ctx context.Context, reportProgress ProgressCallback, memo *MemoTable, n int64, opts Options) (*big.Int, error) {
	tracker := NewStepTracker(reportProgress, CalcLinearWork(n))

	if n == 0 {
		tracker.Done()
		return big.NewInt(0), nil
	}

	a, b := gmp.NewInt(0), gmp.NewInt(1)
	for i := int64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
		if i%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("gmp iterative loop canceled at index %d: %w", i, err)
			}
			tracker.Step(float64(i - 1))
		}
	}

	tracker.Done()
	return new(big.Int).SetBytes(b.Bytes()), nil
}
