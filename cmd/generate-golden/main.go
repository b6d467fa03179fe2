// Command generate-golden regenerates the golden sequence fixture consumed
// by the calculator tests. The values come from an oracle that shares no
// code with the strategies under test, so the fixture stays trustworthy
// even when every strategy drifts the same way.
//
// Run from the repository root:
//
//	go run ./cmd/generate-golden
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strconv"
	"strings"
)

const defaultOut = "internal/fibonacci/testdata/fibonacci_golden.json"

// defaultExtras spot-checks beyond the contiguous range: two mid-size
// anchors, the uint64 overflow boundary (92, 93, 94) and two large values.
const defaultExtras = "40,45,50,92,93,94,100,1000"

type goldenEntry struct {
	N     uint64 `json:"n"`
	Value string `json:"value"`
}

func main() {
	out := flag.String("out", defaultOut, "fixture path to write")
	seq := flag.Uint64("seq", 30, "generate every index in [0, seq]")
	extras := flag.String("extra", defaultExtras, "comma-separated additional indices")
	flag.Parse()

	indices, err := parseIndices(*seq, *extras)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate-golden:", err)
		os.Exit(1)
	}

	entries := make([]goldenEntry, 0, len(indices))
	for _, n := range indices {
		entries = append(entries, goldenEntry{N: n, Value: fibBig(n).String()})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate-golden:", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "generate-golden:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d entries to %s\n", len(entries), *out)
}

// parseIndices builds the sorted, deduplicated index list from the
// contiguous range [0, seq] and the comma-separated extras.
func parseIndices(seq uint64, extras string) ([]uint64, error) {
	indices := make([]uint64, 0, seq+1)
	for n := uint64(0); n <= seq; n++ {
		indices = append(indices, n)
	}
	for _, field := range strings.Split(extras, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", field, err)
		}
		indices = append(indices, n)
	}
	slices.Sort(indices)
	return slices.Compact(indices), nil
}

// fibBig computes F(n) by plain two-variable addition. Deliberately the
// dumbest correct implementation: the fixture is only as good as the
// independence of its oracle.
func fibBig(n uint64) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}
