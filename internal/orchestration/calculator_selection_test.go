package orchestration

import (
	"context"
	"testing"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// TestGetCalculatorsToRun covers single-key selection, the "all"
// expansion and unknown keys.
func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := fibonacci.NewDefaultFactory()

	t.Run("single strategy returns one calculator", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun(fibonacci.KeyIterative, factory)

		if len(calculators) != 1 {
			t.Fatalf("expected 1 calculator, got %d", len(calculators))
		}
		if calculators[0].Name() != "Iterative" {
			t.Errorf("expected Iterative, got %q", calculators[0].Name())
		}
	})

	t.Run("all expands to the default comparison order", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("all", factory)
		keys := factory.DefaultOrder()

		if len(calculators) != len(keys) {
			t.Fatalf("expected %d calculators, got %d", len(keys), len(calculators))
		}
		for i, k := range keys {
			want, err := factory.Get(k)
			if err != nil {
				t.Fatalf("factory.Get(%q): %v", k, err)
			}
			if calculators[i].Name() != want.Name() {
				t.Errorf("position %d: got %q, want %q", i, calculators[i].Name(), want.Name())
			}
		}
	})

	t.Run("table-filling strategy", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun(fibonacci.KeyMemoized, factory)

		if len(calculators) != 1 {
			t.Fatalf("expected 1 calculator, got %d", len(calculators))
		}
		if calculators[0].Name() != "MemoizedRecursive" {
			t.Errorf("expected MemoizedRecursive, got %q", calculators[0].Name())
		}
	})

	t.Run("unknown key yields nil", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("matrix", factory)

		if calculators != nil {
			t.Errorf("expected nil for unknown key, got %d calculators", len(calculators))
		}
	})
}

// TestSelectMemoForDump verifies that the dump shows the table of the last
// strategy that actually computed slot n, regardless of run order.
func TestSelectMemoForDump(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	const n = int64(10)

	runAll := func(t *testing.T, keys ...string) []fibonacci.Calculator {
		t.Helper()
		factory := fibonacci.NewDefaultFactory()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for i, k := range keys {
			calc, err := factory.Get(k)
			if err != nil {
				t.Fatalf("factory.Get(%q): %v", k, err)
			}
			if _, err := calc.Calculate(ctx, nil, i, n, fibonacci.Options{}); err != nil {
				t.Fatalf("%s: %v", calc.Name(), err)
			}
			calculators = append(calculators, calc)
		}
		return calculators
	}

	t.Run("default order dumps the bottom-up fill", func(t *testing.T) {
		t.Parallel()
		calculators := runAll(t, fibonacci.KeyIterative, fibonacci.KeyNaive, fibonacci.KeyMemoized, fibonacci.KeyBottomUp)

		memo := SelectMemoForDump(calculators, n)
		if memo == nil {
			t.Fatal("expected a memo table, got nil")
		}
		if got := memo.String(); got != "[0 1 1 2 3 5 8 13 21 34 55]" {
			t.Errorf("memo dump = %s", got)
		}
	})

	t.Run("skips strategies that never write the table", func(t *testing.T) {
		t.Parallel()
		calculators := runAll(t, fibonacci.KeyBottomUp, fibonacci.KeyIterative)

		memo := SelectMemoForDump(calculators, n)
		if memo == nil {
			t.Fatal("expected a memo table, got nil")
		}
		if !memo.IsComputed(n) {
			t.Error("expected the populated bottom-up table, got an unfilled one")
		}
	})

	t.Run("falls back to an unfilled table when nothing computed slot n", func(t *testing.T) {
		t.Parallel()
		calculators := runAll(t, fibonacci.KeyIterative)

		memo := SelectMemoForDump(calculators, n)
		if memo == nil {
			t.Fatal("expected the iterative calculator's table, got nil")
		}
		if int64(memo.Len()) != n+1 {
			t.Errorf("memo length = %d, want %d", memo.Len(), n+1)
		}
		if memo.IsComputed(n) {
			t.Error("iterative run should leave every slot uncomputed")
		}
	})

	t.Run("no calculators", func(t *testing.T) {
		t.Parallel()
		if memo := SelectMemoForDump(nil, n); memo != nil {
			t.Error("expected nil for an empty calculator list")
		}
	})

	t.Run("negative index", func(t *testing.T) {
		t.Parallel()
		calculators := runAll(t, fibonacci.KeyBottomUp)
		if memo := SelectMemoForDump(calculators, -1); memo != nil {
			t.Error("expected nil for a negative index")
		}
	})
}
