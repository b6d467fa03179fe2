package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// coreCalculator is the raw computation behind a strategy. Implementations
// receive a freshly reset memo table sized for [0, n] and may fill it or
// ignore it as their algorithm dictates. They report fractional progress
// through the callback and must finish with a 1.0 report on success.
type coreCalculator interface {
	// CalculateCore computes F(n). The memo table has exactly n+1 slots on
	// entry, all uncomputed.
	CalculateCore(ctx context.Context, reportProgress ProgressCallback, memo *MemoTable, n int64, opts Options) (*big.Int, error)

	// Name returns the strategy's identifier in call notation, e.g.
	// "BottomUp". It appears verbatim in result lines and timing tables.
	Name() string

	// Description returns the long form with complexity notes, e.g.
	// "Bottom-Up (Tabulation, O(n) Time, O(n) Space)".
	Description() string
}

// Calculator is the public face of a strategy: validation, memo lifecycle
// and progress plumbing around a coreCalculator. Implementations are not
// safe for concurrent use; obtain a fresh instance per goroutine from the
// factory.
type Calculator interface {
	// Calculate computes F(n), resetting the memo table to n+1 slots first.
	// progressChan may be nil; calcIndex tags progress updates when several
	// calculators run under one reporter.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64, opts Options) (*big.Int, error)

	// Name returns the strategy's call-style identifier.
	Name() string

	// Description returns the long descriptive form.
	Description() string

	// Memo exposes the memoization buffer as left by the last Calculate.
	Memo() *MemoTable
}

// FibCalculator wraps a coreCalculator with input validation, the owned memo
// table and progress reporting. Each instance owns its table, so two
// instances never contend even when running in parallel.
type FibCalculator struct {
	core coreCalculator
	memo *MemoTable
}

// NewCalculator wraps a core strategy implementation into a Calculator with
// its own memo table.
func NewCalculator(core coreCalculator) Calculator {
	return &FibCalculator{core: core, memo: NewMemoTable()}
}

// Name returns the call-style identifier of the wrapped strategy.
func (fc *FibCalculator) Name() string { return fc.core.Name() }

// Description returns the long descriptive form of the wrapped strategy.
func (fc *FibCalculator) Description() string { return fc.core.Description() }

// Memo returns the calculator's memoization buffer. After a successful
// Calculate it holds exactly n+1 slots; which slots are computed depends on
// the strategy.
func (fc *FibCalculator) Memo() *MemoTable { return fc.memo }

// Calculate computes F(n) with the wrapped strategy.
//
// The memo table is reset to n+1 empty slots before dispatch, so every run
// starts cold and the reported time covers the whole computation. Progress
// updates are sent to progressChan without blocking; a slow consumer loses
// updates rather than stalling the calculation.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines.
//   - progressChan: Optional channel receiving progress updates; may be nil.
//   - calcIndex: Index tagging this calculator's updates on the channel.
//   - n: The sequence index; must be in [0, MaxIndex].
//   - opts: Per-run tuning knobs.
//
// Returns:
//   - *big.Int: F(n), detached from the memo table. The caller owns it and
//     later Calculate calls cannot mutate it.
//   - error: A ValidationError for out-of-range n, or the strategy's error.
func (fc *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64, opts Options) (*big.Int, error) {
	report := channelReporter(progressChan, calcIndex)
	return fc.calculate(ctx, report, n, opts)
}

// CalculateWithObservers computes F(n), broadcasting progress through a
// ProgressSubject instead of a raw channel. The subject's observer set is
// frozen for the duration of the run.
func (fc *FibCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n int64, opts Options) (*big.Int, error) {
	var report ProgressCallback
	if subject != nil {
		report = subject.Freeze(calcIndex)
	}
	return fc.calculate(ctx, report, n, opts)
}

func (fc *FibCalculator) calculate(ctx context.Context, report ProgressCallback, n int64, opts Options) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("sequence index must be non-negative, got %d", n),
		}
	}
	if n > MaxIndex {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("sequence index %d exceeds the maximum %d", n, MaxIndex),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	if report == nil {
		report = func(float64) {}
	}

	fc.memo.Reset(n, opts.ArenaAllocation)

	result, err := fc.core.CalculateCore(ctx, report, fc.memo, n, opts)
	if err != nil {
		return nil, err
	}
	// Detach the result from the memo table so a later Reset cannot mutate
	// a value the caller still holds.
	return new(big.Int).Set(result), nil
}

// channelReporter adapts a progress channel into a callback. Sends never
// block; when the channel is full the update is dropped.
func channelReporter(ch chan<- ProgressUpdate, calcIndex int) ProgressCallback {
	if ch == nil {
		return nil
	}
	return func(p float64) {
		select {
		case ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: p}:
		default:
		}
	}
}
