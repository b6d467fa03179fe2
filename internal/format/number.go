package format

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatNumberString inserts thousand separators into a decimal number
// string. A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatBigIntTruncated renders v in decimal, eliding the middle when the
// representation exceeds maxDigits characters. Short values gain thousand
// separators; truncated values report their full digit count instead, since
// separators in a clipped number would mislead.
func FormatBigIntTruncated(v *big.Int, maxDigits int) string {
	s := v.Text(10)
	if maxDigits <= 0 || len(s) <= maxDigits {
		return FormatNumberString(s)
	}
	half := maxDigits / 2
	return fmt.Sprintf("%s...%s (%d digits)", s[:half], s[len(s)-half:], len(s))
}

// FormatMemoSlots renders memo slot values as a bracketed list in index
// order, with uncomputed slots shown as "·". When the table holds more than
// limit slots the middle is elided so a large run cannot flood the report;
// limit <= 0 disables elision.
func FormatMemoSlots(values []*big.Int, limit int) string {
	var b strings.Builder
	b.WriteByte('[')
	if limit > 0 && len(values) > limit {
		head := limit / 2
		tail := limit - head
		writeSlots(&b, values[:head])
		fmt.Fprintf(&b, " … (%d slots elided) … ", len(values)-head-tail)
		writeSlots(&b, values[len(values)-tail:])
	} else {
		writeSlots(&b, values)
	}
	b.WriteByte(']')
	return b.String()
}

func writeSlots(b *strings.Builder, values []*big.Int) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		if v == nil {
			b.WriteRune('·')
		} else {
			b.WriteString(v.Text(10))
		}
	}
}
