package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/ui"
)

// Style variables for the dashboard panels. Initialized from the active ui
// theme via initTUIStyles().
var (
	panelStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	titleStyle   lipgloss.Style
	versionStyle lipgloss.Style
	elapsedStyle lipgloss.Style

	logTimeStyle     lipgloss.Style
	logAlgoStyle     lipgloss.Style
	logProgressStyle lipgloss.Style
	logSuccessStyle  lipgloss.Style
	logErrorStyle    lipgloss.Style

	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style

	chartBarStyle   lipgloss.Style
	chartEmptyStyle lipgloss.Style

	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style

	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusErrorStyle   lipgloss.Style
	statusDoneStyle    lipgloss.Style

	cpuSparklineStyle lipgloss.Style
	memSparklineStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all dashboard styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has applied
// the configured theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	bold := func(c lipgloss.TerminalColor) lipgloss.Style {
		return fg(c).Bold(true)
	}

	panelStyle = lipgloss.NewStyle().
		Background(t.Bg).
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	headerStyle = bold(t.Accent).Background(t.Bg).Padding(0, 1)
	titleStyle = bold(t.Accent)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	logTimeStyle = fg(t.Dim)
	logAlgoStyle = fg(t.Info)
	logProgressStyle = fg(t.Accent)
	logSuccessStyle = fg(t.Success)
	logErrorStyle = fg(t.Error)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = bold(t.Accent)

	chartBarStyle = fg(t.Accent)
	chartEmptyStyle = fg(t.Dim)

	footerKeyStyle = bold(t.Accent)
	footerDescStyle = fg(t.Dim)

	statusRunningStyle = bold(t.Success)
	statusPausedStyle = bold(t.Warning)
	statusDoneStyle = bold(t.Accent)
	statusErrorStyle = bold(t.Error)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}
