package metrics

import (
	"fmt"
	"math"
	"math/big"
	"time"
)

// log10Of2 converts a binary digit count into a decimal digit estimate.
const log10Of2 = 0.30102999566398119521

// bitsPerIndex is log2(phi). Each index adds this many bits to the result
// asymptotically, which lets live estimates avoid touching the big.Int.
const bitsPerIndex = 0.69424191363061730173

// Indicators summarizes the throughput of one calculation: how fast the
// result grew and how many additions the strategy performed. A nil value
// means no meaningful figures are available yet.
type Indicators struct {
	// BitsPerSecond is the growth rate of the result in binary digits.
	BitsPerSecond float64
	// DigitsPerSecond is the growth rate of the result in decimal digits.
	DigitsPerSecond float64
	// AdditionSteps is the number of big-integer additions a linear
	// strategy performs to reach the target index.
	AdditionSteps int64
	// StepsPerSecond relates AdditionSteps to the elapsed time.
	StepsPerSecond float64
	// IsEven reports the parity of the result.
	IsEven bool
}

// Compute derives indicators from a completed calculation. The digit count
// is estimated from the bit length rather than rendered, so the call stays
// cheap even for very large results. Returns nil when the result is missing
// or the duration is not positive.
func Compute(result *big.Int, n int64, duration time.Duration) *Indicators {
	if result == nil || duration <= 0 {
		return nil
	}

	secs := duration.Seconds()
	bits := float64(result.BitLen())
	steps := n - 1
	if steps < 0 {
		steps = 0
	}

	return &Indicators{
		BitsPerSecond:   bits / secs,
		DigitsPerSecond: bits * log10Of2 / secs,
		AdditionSteps:   steps,
		StepsPerSecond:  float64(steps) / secs,
		IsEven:          result.Bit(0) == 0,
	}
}

// ComputeLive estimates indicators for a calculation still in flight from
// the aggregated progress fraction. The bit count comes from the asymptotic
// growth rate, and the parity comes from the index: F(n) is even exactly
// when n is a multiple of 3. Returns nil before any progress is made.
func ComputeLive(n int64, averageProgress float64, elapsed time.Duration) *Indicators {
	if n < 0 || averageProgress <= 0 || elapsed <= 0 {
		return nil
	}

	secs := elapsed.Seconds()
	completed := float64(n) * averageProgress
	bits := completed * bitsPerIndex
	steps := int64(math.Floor(completed)) - 1
	if steps < 0 {
		steps = 0
	}

	return &Indicators{
		BitsPerSecond:   bits / secs,
		DigitsPerSecond: bits * log10Of2 / secs,
		AdditionSteps:   steps,
		StepsPerSecond:  float64(steps) / secs,
		IsEven:          n%3 == 0,
	}
}

// FormatBitsPerSecond renders a bit rate with a binary-rate suffix.
func FormatBitsPerSecond(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f Gbit/s", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f Mbit/s", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f kbit/s", v/1e3)
	default:
		return fmt.Sprintf("%.1f bit/s", v)
	}
}

// FormatDigitsPerSecond renders a decimal digit rate.
func FormatDigitsPerSecond(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG digits/s", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM digits/s", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fk digits/s", v/1e3)
	default:
		return fmt.Sprintf("%.1f digits/s", v)
	}
}
