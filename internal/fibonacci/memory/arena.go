// Package memory provides the allocation helpers behind the memo table:
// a bump-pointer arena for slot storage, a closed-form size estimator used
// to enforce memory limits before allocating, and GC tuning for large fills.
package memory

import "math/big"

// fibonacciGrowthFactor is log2(phi), phi being the golden ratio.
// F(k) occupies about k * fibonacciGrowthFactor bits.
const fibonacciGrowthFactor = 0.69424

// wordBits is the size of a big.Word on 64-bit platforms.
const wordBits = 64

// arenaMinIndex is the smallest table size worth arena-backing; below it
// the per-slot heap allocations are cheaper than the block.
const arenaMinIndex = 1024

// Arena pre-allocates one contiguous block of big.Word memory for the memo
// slots of a single calculation. Slot values drawn from it share a backing
// array, so the whole table is released in one step when the calculation's
// arena goes out of scope, instead of leaving n+1 individually tracked
// allocations to the GC.
//
// Allocation is bump-pointer: each AllocBigInt advances a used-words mark.
// When the block is exhausted the arena falls back to plain heap allocation.
type Arena struct {
	buf  []big.Word
	used int
}

// WordsForIndex returns the backing capacity, in words, that the value F(k)
// needs, with one spare word so in-place Add never reallocates.
func WordsForIndex(k int64) int {
	if k < 1 {
		return 2
	}
	bits := float64(k) * fibonacciGrowthFactor
	return int(bits/wordBits) + 2
}

// TotalWordsEstimate returns the arena capacity needed to back every slot
// of a memo table for index n: the sum of WordsForIndex over 0..n.
func TotalWordsEstimate(n int64) int {
	if n < 0 {
		return 0
	}
	// Closed form of the sum: quadratic in n, plus two words per slot.
	bits := fibonacciGrowthFactor * float64(n) * float64(n+1) / 2
	return int(bits/wordBits) + 2*int(n+1)
}

// NewMemoArena creates an arena sized to back a full memo table for index n.
// Small tables return an empty arena, which makes AllocBigInt fall through
// to the heap.
func NewMemoArena(n int64) *Arena {
	if n < arenaMinIndex {
		return &Arena{}
	}
	return &Arena{buf: make([]big.Word, TotalWordsEstimate(n))}
}

// AllocBigInt returns a zero-valued big.Int whose backing array comes from
// the arena, with the given word capacity. An exhausted or empty arena
// falls back to a heap-backed big.Int of the same capacity.
func (a *Arena) AllocBigInt(words int) *big.Int {
	z := new(big.Int)
	if words <= 0 {
		return z
	}
	if a.buf == nil || a.used+words > len(a.buf) {
		z.SetBits(make([]big.Word, 0, words))
		return z
	}
	block := a.buf[a.used : a.used+words : a.used+words]
	a.used += words
	z.SetBits(block[:0]) // length 0, capacity words: z reads as 0
	return z
}

// Reset rewinds the arena for reuse without freeing the block.
// Every big.Int previously allocated from it becomes invalid.
func (a *Arena) Reset() {
	a.used = 0
}

// UsedWords returns how many words have been handed out since the last Reset.
func (a *Arena) UsedWords() int {
	return a.used
}

// CapacityWords returns the total block capacity in words.
func (a *Arena) CapacityWords() int {
	return len(a.buf)
}
