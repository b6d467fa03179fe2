package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Strategy Registry Keys
// ─────────────────────────────────────────────────────────────────────────────

// Registry keys for the built-in strategies. The factory resolves these and
// the CLI accepts them for --algo.
const (
	KeyIterative = "iterative"
	KeyNaive     = "naive"
	KeyMemoized  = "memoized"
	KeyBottomUp  = "bottom-up"
)

// ─────────────────────────────────────────────────────────────────────────────
// Execution Limits
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultNaiveLimit is the largest index the naive recursive strategy
	// accepts unless overridden. The call tree doubles roughly every 1.44
	// indices; past this point a run stops being a demonstration and starts
	// being an overnight job.
	DefaultNaiveLimit int64 = 42

	// MaxIndex bounds accepted indices. A memo table above this size cannot
	// exist in addressable memory, so larger requests fail validation
	// instead of failing inside the allocator.
	MaxIndex int64 = 1 << 40

	// CancelCheckInterval is the number of loop iterations between context
	// cancellation checks in the O(n) strategies. Checking every iteration
	// would cost more than the Fibonacci step itself.
	CancelCheckInterval = 4096

	// NaiveCancelCheckInterval is the number of recursive calls between
	// context cancellation checks in the naive strategy.
	NaiveCancelCheckInterval = 8192
)

// ─────────────────────────────────────────────────────────────────────────────
// Growth Model
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// F(n) occupies about n * FibonacciGrowthFactor bits; the memory
	// estimator and the memo arena size slots from it.
	FibonacciGrowthFactor = 0.69424
)
