// Package fibonacci implements the four classic strategies for computing
// the nth Fibonacci number: an iterative rolling pair, naive recursion,
// top-down memoized recursion, and a bottom-up table fill.
//
// All strategies share one convention, F(0)=0, F(1)=1, F(2)=1, and agree on
// every index. The memoizing strategies work over a MemoTable owned by the
// calculator instance that runs them: the table is reset to n+1 uncomputed
// slots before every calculation and can be inspected afterward, so two
// concurrent callers must each hold their own calculator.
//
// Strategies are obtained through the CalculatorFactory, which hands out a
// fresh calculator per request precisely for that reason.
package fibonacci
