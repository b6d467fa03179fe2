package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/fibbench/internal/format"
)

// sparklineWidth is the horizontal space reserved for the label column next
// to each sparkline row. The sample buffers hold one value per remaining
// character cell.
const sparklineWidth = 17

// ChartModel displays the aggregated progress, its history as a braille
// chart, and short sparkline histories of host CPU and memory usage.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	done            bool
	finalElapsed    time.Duration
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	width           int
	height          int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(120),
		cpuHistory:      NewRingBuffer(60),
		memHistory:      NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the sample buffers to match.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.cpuHistory.Resize(w - sparklineWidth)
	c.memHistory.Resize(w - sparklineWidth)
	// Two braille dot columns per character cell.
	c.progressHistory.Resize((w - 6) * 2)
}

// AddDataPoint records one aggregated progress update.
func (c *ChartModel) AddDataPoint(value, averageProgress float64, eta time.Duration) {
	c.averageProgress = averageProgress
	c.eta = eta
	c.progressHistory.Push(averageProgress * 100)
}

// UpdateSysStats records one host CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the panel with the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.finalElapsed = elapsed
}

// Reset clears all recorded samples.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.finalElapsed = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the overall progress as a filled bar with a
// percentage. Returns an empty string when the panel is too narrow.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 12
	if barWidth < 5 {
		return ""
	}
	filled := int(c.averageProgress*float64(barWidth) + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf(" %s %5.1f%%", bar, c.averageProgress*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	inner := c.height - 2

	rows := []string{
		" " + metricLabelStyle.Render("Progress Chart"),
		"",
		c.renderProgressBar(),
	}

	if c.done {
		rows = append(rows, fmt.Sprintf(" %s %s",
			metricLabelStyle.Render("Done in:"),
			metricValueStyle.Render(format.FormatExecutionDuration(c.finalElapsed))))
	} else {
		rows = append(rows, fmt.Sprintf(" %s %s",
			metricLabelStyle.Render("ETA:"),
			metricValueStyle.Render(format.FormatETA(c.eta))))
	}

	showSparklines := c.height >= 10

	// The braille history fills whatever space remains between the ETA
	// line and the sparklines.
	used := len(rows)
	if showSparklines {
		used += 3
	}
	if histRows := inner - used - 1; histRows >= 2 && c.progressHistory.Len() > 1 {
		rows = append(rows, "")
		for _, line := range RenderBrailleChart(c.progressHistory.Slice(), c.width-6, histRows) {
			rows = append(rows, " "+chartBarStyle.Render(line))
		}
	}

	if showSparklines {
		rows = append(rows,
			"",
			fmt.Sprintf(" %s %s",
				metricLabelStyle.Render(fmt.Sprintf("%-4s", "CPU")),
				cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice()))),
			fmt.Sprintf(" %s %s",
				metricLabelStyle.Render(fmt.Sprintf("%-4s", "MEM")),
				memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice()))),
		)
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.Join(rows, "\n"))
}
