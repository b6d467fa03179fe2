package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/metrics"
)

// Speed readings are rate-limited and exponentially smoothed.
const (
	minSpeedInterval = 0.05 // seconds between samples
	speedSmoothing   = 0.3  // weight of the newest sample
)

// MetricsModel displays runtime memory statistics and, once available,
// throughput indicators for the running comparison.
type MetricsModel struct {
	width  int
	height int

	mem        MemStatsMsg
	indicators *metrics.Indicators

	speed        float64 // progress per second
	lastProgress float64
	lastUpdate   time.Time
}

// NewMetricsModel returns an empty panel with the speed sampler primed.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize records the panel dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats replaces the stored runtime counters.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg
}

// UpdateProgress updates the speed metric from the aggregated progress.
// Samples closer together than minSpeedInterval are dropped to keep the
// reading stable.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= minSpeedInterval {
		return
	}

	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed == 0 {
			m.speed = instant
		} else {
			m.speed += speedSmoothing * (instant - m.speed)
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// UpdateIndicators stores the latest throughput indicators. A nil value
// leaves the previous reading in place.
func (m *MetricsModel) UpdateIndicators(ind *metrics.Indicators) {
	if ind != nil {
		m.indicators = ind
	}
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := (m.width - 6) / 2

	estimate := time.Duration(float64(time.Second) / max(m.speed, 0.001))

	rows := []string{
		" " + metricLabelStyle.Render("Metrics"),
		formatMetricCol("Memory:", formatBytes(m.mem.Alloc), colWidth) +
			formatMetricCol("Heap:", formatBytes(m.mem.HeapInuse), colWidth),
		formatMetricCol("GC Runs:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6), colWidth) +
			formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.NumGoroutine), colWidth),
		formatMetricCol("Speed:", format.FormatETA(estimate)+"/calc", colWidth),
	}

	if ind := m.indicators; ind != nil {
		parity := "odd"
		if ind.IsEven {
			parity = "even"
		}
		rows = append(rows,
			formatMetricCol("Bits/s:", metrics.FormatBitsPerSecond(ind.BitsPerSecond), colWidth)+
				formatMetricCol("Digits/s:", metrics.FormatDigitsPerSecond(ind.DigitsPerSecond), colWidth),
			formatMetricCol("Steps:", fmt.Sprintf("%d (%.1f/s)", ind.AdditionSteps, ind.StepsPerSecond), colWidth)+
				formatMetricCol("Parity:", parity, colWidth),
		)
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(strings.Join(rows, "\n"))
}

// formatMetricCol renders one "label value" cell padded to a fixed column
// width, measured after styling so ANSI codes do not skew the padding.
func formatMetricCol(label, value string, colWidth int) string {
	cell := " " + metricLabelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + metricValueStyle.Render(value)
	if pad := colWidth - lipgloss.Width(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}

func formatBytes(b uint64) string {
	units := []struct {
		limit uint64
		name  string
	}{{1 << 30, "GB"}, {1 << 20, "MB"}, {1 << 10, "KB"}}

	for _, u := range units {
		if b >= u.limit {
			return fmt.Sprintf("%.1f %s", float64(b)/float64(u.limit), u.name)
		}
	}
	return fmt.Sprintf("%d B", b)
}
