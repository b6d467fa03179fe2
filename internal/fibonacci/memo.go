package fibonacci

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/agbru/fibbench/internal/fibonacci/memory"
)

// MemoTable is the per-calculator memoization buffer: one slot per index in
// [0, n]. A nil slot means "not computed"; there is no in-band sentinel, so
// F(0) = 0 is representable like any other value. The table is not safe for
// concurrent use. Each calculator instance owns its table, which is what
// keeps parallel comparison runs from sharing state.
type MemoTable struct {
	slots []*big.Int
	arena *memory.Arena
	// arenaWanted defers block allocation to the first AllocValue, so a
	// strategy that never writes the table never pays for its storage.
	arenaWanted bool
	arenaIndex  int64
}

// NewMemoTable returns an empty table. Reset sizes it for a run.
func NewMemoTable() *MemoTable {
	return &MemoTable{}
}

// Reset discards all entries and resizes the table to n+1 slots, so that
// after any calculation the table covers exactly the indices [0, n]. Slot
// backing storage is reused across runs when capacity allows. With useArena
// set, slot values are carved from one pre-sized arena instead of individual
// heap allocations; the block is allocated on the first AllocValue call, and
// the arena itself ignores the request for small n.
func (t *MemoTable) Reset(n int64, useArena bool) {
	if n < 0 {
		panic("fibonacci: memo table reset with negative index")
	}
	size := int(n + 1)
	if cap(t.slots) >= size {
		t.slots = t.slots[:size]
		for i := range t.slots {
			t.slots[i] = nil
		}
	} else {
		t.slots = make([]*big.Int, size)
	}
	t.arenaWanted = useArena
	t.arenaIndex = n
	switch {
	case !useArena:
		t.arena = nil
	case t.arena != nil && t.arena.CapacityWords() >= memory.TotalWordsEstimate(n):
		t.arena.Reset()
	default:
		t.arena = nil
	}
}

// Len returns the number of slots, i.e. n+1 after Reset(n, ...).
func (t *MemoTable) Len() int {
	return len(t.slots)
}

// IsComputed reports whether slot k holds a computed value.
func (t *MemoTable) IsComputed(k int64) bool {
	return k >= 0 && k < int64(len(t.slots)) && t.slots[k] != nil
}

// Get returns the value at slot k and whether it has been computed. The
// returned pointer is the live slot value; callers that retain it across a
// Reset must copy it first.
func (t *MemoTable) Get(k int64) (*big.Int, bool) {
	if k < 0 || k >= int64(len(t.slots)) {
		return nil, false
	}
	v := t.slots[k]
	return v, v != nil
}

// Set stores v at slot k, taking ownership of v.
func (t *MemoTable) Set(k int64, v *big.Int) {
	t.slots[k] = v
}

// AllocValue returns a fresh zero big.Int sized for the magnitude of F(k),
// arena-backed when the table was reset with arena allocation. The value is
// not stored; pass it to Set once computed, so a canceled run never leaves a
// slot holding a partial result.
func (t *MemoTable) AllocValue(k int64) *big.Int {
	if t.arena == nil && t.arenaWanted {
		t.arena = memory.NewMemoArena(t.arenaIndex)
	}
	if t.arena != nil {
		return t.arena.AllocBigInt(memory.WordsForIndex(k))
	}
	return new(big.Int)
}

// Values returns a copy of the slot slice. The pointed-to values are shared
// with the table.
func (t *MemoTable) Values() []*big.Int {
	out := make([]*big.Int, len(t.slots))
	copy(out, t.slots)
	return out
}

// Equal reports whether two tables have the same length and identical slot
// contents, treating nil slots as equal only to nil slots.
func (t *MemoTable) Equal(other *MemoTable) bool {
	if len(t.slots) != len(other.slots) {
		return false
	}
	for i, v := range t.slots {
		w := other.slots[i]
		if (v == nil) != (w == nil) {
			return false
		}
		if v != nil && v.Cmp(w) != 0 {
			return false
		}
	}
	return true
}

// String renders the table as a bracketed list with "·" for uncomputed
// slots. Intended for logs and small tables; display code truncates long
// tables itself.
func (t *MemoTable) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range t.slots {
		if i > 0 {
			b.WriteByte(' ')
		}
		if v == nil {
			b.WriteString("·")
		} else {
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte(']')
	return b.String()
}
