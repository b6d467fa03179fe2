package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/format"
)

// HeaderModel renders the top bar: title, version and the elapsed timer.
type HeaderModel struct {
	version string
	width   int

	startTime time.Time
	endTime   time.Time
}

// NewHeaderModel creates a header stamped with the build version.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset starts a fresh elapsed timer for a new run.
func (h *HeaderModel) Reset() {
	h.endTime = time.Time{}
	h.startTime = time.Now()
}

// SetWidth records the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header row.
func (h HeaderModel) View() string {
	title := "FibBench Monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}

	elapsed := time.Since(h.startTime)
	if !h.endTime.IsZero() {
		elapsed = h.endTime.Sub(h.startTime)
	}

	left := titleStyle.Render(title) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(elapsed)))

	gap := h.width - 2 - lipgloss.Width(left)
	return headerStyle.Width(h.width).Render(left + spaces(gap))
}

// spaces returns n space characters, nothing for non-positive n.
func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}
