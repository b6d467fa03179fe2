package orchestration

import (
	"github.com/agbru/fibbench/internal/fibonacci"
)

// GetCalculatorsToRun resolves an algorithm selection into calculator
// instances. The selection "all" expands to the factory's canonical
// comparison order, which keeps the table-filling strategies last so the
// memo dump after a full comparison shows a populated table.
//
// Parameters:
//   - algo: A registry key ("iterative", "bottom-up", ...) or "all".
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []fibonacci.Calculator: The calculators to execute, nil if the key is unknown.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo != "all" {
		calc, err := factory.Get(algo)
		if err != nil {
			return nil
		}
		return []fibonacci.Calculator{calc}
	}
	order := factory.DefaultOrder()
	calculators := make([]fibonacci.Calculator, 0, len(order))
	for _, key := range order {
		if calc, err := factory.Get(key); err == nil {
			calculators = append(calculators, calc)
		}
	}
	return calculators
}

// SelectMemoForDump picks the memo table shown after a comparison run: the
// table of the last calculator in execution order whose slot for n was
// actually computed. Strategies that never write their table (iterative,
// naive) are skipped over, so the default ordering dumps the bottom-up fill.
// When no strategy filled its table, the last table is returned as is; the
// dump then shows every slot uncomputed.
func SelectMemoForDump(calculators []fibonacci.Calculator, n int64) *fibonacci.MemoTable {
	if n < 0 {
		return nil
	}
	var fallback *fibonacci.MemoTable
	for i := len(calculators) - 1; i >= 0; i-- {
		memo := calculators[i].Memo()
		if memo == nil {
			continue
		}
		if fallback == nil {
			fallback = memo
		}
		if memo.IsComputed(n) {
			return memo
		}
	}
	return fallback
}
