package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// bigIntHeaderBytes approximates the per-slot overhead of a *big.Int:
// pointer, slice header, and allocator rounding.
const bigIntHeaderBytes = 48

// EstimateMemoTableBytes returns the approximate heap footprint of a fully
// populated memo table for index n: backing words for every slot plus
// per-slot overhead. The estimate is what the memory-limit check compares
// against before any allocation happens.
func EstimateMemoTableBytes(n int64) uint64 {
	if n < 0 {
		return 0
	}
	words := TotalWordsEstimate(n)
	slots := uint64(n + 1)
	return uint64(words)*(wordBits/8) + slots*bigIntHeaderBytes
}

// ParseMemoryLimit parses a human-readable memory limit such as "512MB",
// "2GiB", "1024" (bytes) or "0" (no limit). Binary and decimal suffixes are
// treated identically as powers of 1024, matching what users mean in
// practice.
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	upper := strings.ToUpper(s)
	multipliers := []struct {
		suffix string
		factor uint64
	}{
		{"KIB", 1 << 10}, {"MIB", 1 << 20}, {"GIB", 1 << 30}, {"TIB", 1 << 40},
		{"KB", 1 << 10}, {"MB", 1 << 20}, {"GB", 1 << 30}, {"TB", 1 << 40},
		{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30}, {"T", 1 << 40},
		{"B", 1},
	}

	for _, m := range multipliers {
		if strings.HasSuffix(upper, m.suffix) {
			numPart := strings.TrimSpace(upper[:len(upper)-len(m.suffix)])
			value, err := strconv.ParseFloat(numPart, 64)
			if err != nil || value < 0 {
				return 0, fmt.Errorf("invalid memory limit %q", s)
			}
			return uint64(value * float64(m.factor)), nil
		}
	}

	value, err := strconv.ParseUint(upper, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q", s)
	}
	return value, nil
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	switch {
	case b >= 1<<40:
		return fmt.Sprintf("%.2f TiB", float64(b)/(1<<40))
	case b >= 1<<30:
		return fmt.Sprintf("%.2f GiB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KiB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// FormatMemoryEstimate describes the estimated table footprint for n in a
// form suitable for error messages and the verbose banner.
func FormatMemoryEstimate(n int64) string {
	return fmt.Sprintf("memo table for n=%d needs about %s", n, FormatBytes(EstimateMemoTableBytes(n)))
}
