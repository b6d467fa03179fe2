package tui

import (
	"slices"
	"strings"
)

// sparkBlocks are the eight block glyphs a sparkline is built from, lowest
// to highest.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RingBuffer keeps the most recent float64 samples in a fixed window. The
// dashboard uses one per chart for progress and throughput history.
type RingBuffer struct {
	buf  []float64
	next int
	used int
}

// NewRingBuffer allocates a buffer holding up to capacity samples. A
// capacity below one is raised to one.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]float64, max(capacity, 1))}
}

// Push appends a sample, dropping the oldest one once the window is full.
func (r *RingBuffer) Push(v float64) {
	r.buf[r.next] = v
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
	}
	r.used = min(r.used+1, len(r.buf))
}

// Len reports how many samples the buffer holds.
func (r *RingBuffer) Len() int { return r.used }

// Cap reports how many samples fit.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Last is the newest sample, zero when nothing was pushed yet.
func (r *RingBuffer) Last() float64 {
	if r.used == 0 {
		return 0
	}
	return r.buf[(r.next+len(r.buf)-1)%len(r.buf)]
}

// Slice copies the samples out in arrival order, oldest first. An empty
// buffer yields nil.
func (r *RingBuffer) Slice() []float64 {
	if r.used == 0 {
		return nil
	}
	out := make([]float64, r.used)
	start := (r.next - r.used + len(r.buf)) % len(r.buf)
	n := copy(out, r.buf[start:])
	copy(out[n:], r.buf[:r.next])
	return out
}

// Resize grows or shrinks the window, keeping the newest samples that
// still fit.
func (r *RingBuffer) Resize(newCap int) {
	newCap = max(newCap, 1)
	if newCap == len(r.buf) {
		return
	}
	kept := r.Slice()
	if len(kept) > newCap {
		kept = kept[len(kept)-newCap:]
	}
	r.buf = make([]float64, newCap)
	copy(r.buf, kept)
	r.next = len(kept) % newCap
	r.used = len(kept)
}

// Reset drops every sample without releasing the backing array.
func (r *RingBuffer) Reset() {
	r.next, r.used = 0, 0
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RenderSparkline draws percentage values (0..100) as one block glyph per
// sample on a single line.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(values) * 3)
	for _, v := range values {
		level := int(clampPercent(v) * float64(len(sparkBlocks)-1) / 100)
		b.WriteRune(sparkBlocks[min(level, len(sparkBlocks)-1)])
	}
	return b.String()
}

// A braille cell packs a 2x4 dot grid into one character: the glyph is
// brailleBase plus one bit per raised dot.
const brailleBase = 0x2800

// brailleBit is indexed by column then row within a cell. The Unicode
// braille block assigns the bottom dots out of row order.
var brailleBit = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots percentage values (0..100) as a braille dot
// chart of the given character width and row count. Samples are plotted
// right-aligned so the newest one lands in the last column; older samples
// that no longer fit are dropped.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	// Each cell covers two dot columns and four dot rows.
	plotW, plotH := width*2, rows*4
	if len(values) > plotW {
		values = values[len(values)-plotW:]
	}

	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = slices.Repeat([]rune{brailleBase}, width)
	}
	for i, v := range values {
		x := plotW - len(values) + i
		y := plotH - 1 - int(clampPercent(v)*float64(plotH-1)/100)
		cells[y/4][x/2] |= brailleBit[x%2][y%4]
	}

	lines := make([]string, rows)
	for i, row := range cells {
		lines[i] = string(row)
	}
	return lines
}
