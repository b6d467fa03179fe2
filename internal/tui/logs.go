package tui

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/orchestration"
)

// memoDumpSlots caps how many memo slots the dump line shows per edge
// before eliding the middle. The logs panel is narrower than a terminal,
// so it elides earlier than the CLI does.
const memoDumpSlots = 8

// valueDisplayDigits caps how many digits of a result the feed shows
// before eliding the middle.
const valueDisplayDigits = 24

// LogsModel is the activity feed of the dashboard: the run configuration,
// one live progress row per strategy, and the timestamped report lines as
// the comparison produces them.
type LogsModel struct {
	keymap     KeyMap
	configRows []string
	algoNames  []string
	progress   []float64
	events     []string
	offset     int // lines scrolled up from the tail; 0 follows new entries
	width      int
	height     int
}

// NewLogsModel creates the feed for the given strategy names.
func NewLogsModel(algoNames []string) LogsModel {
	return LogsModel{
		keymap:    DefaultKeyMap(),
		algoNames: algoNames,
		progress:  make([]float64, len(algoNames)),
	}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// AddExecutionConfig records the run configuration at the top of the feed.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	mode := "sequential"
	if cfg.Parallel {
		mode = "parallel"
	}
	l.configRows = []string{
		l.configRow("Target:", fmt.Sprintf("F(%d)", cfg.N)),
		l.configRow("Strategies:", cfg.Algo),
		l.configRow("Timeout:", cfg.Timeout.String()),
		l.configRow("Execution:", mode),
	}
}

func (l *LogsModel) configRow(label, value string) string {
	return fmt.Sprintf(" %s %s",
		logTimeStyle.Render(fmt.Sprintf("%-11s", label)),
		logAlgoStyle.Render(value))
}

// AddProgressEntry updates the progress row of one strategy.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	if msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(l.progress) {
		l.progress[msg.CalculatorIndex] = msg.Value
	}
}

// AddStrategyLines appends the per-strategy result lines in execution order.
func (l *LogsModel) AddStrategyLines(msg StrategyLinesMsg) {
	for _, res := range msg.Results {
		if res.Err != nil {
			l.addEvent(logErrorStyle.Render(fmt.Sprintf("%s() failed: %v", res.Name, res.Err)))
			continue
		}
		l.addEvent(fmt.Sprintf("%s found that the %dth fibonacci number is %s",
			logAlgoStyle.Render(res.Name+"()"), msg.N, displayValue(res.Result)))
	}
}

// displayValue renders a result plainly, keeping only the edges of very
// large values so one line never floods the feed.
func displayValue(v *big.Int) string {
	s := v.String()
	if len(s) <= valueDisplayDigits {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:10], s[len(s)-10:], len(s))
}

// AddMemoDump appends the memo table line. A nil table adds nothing.
func (l *LogsModel) AddMemoDump(memo *fibonacci.MemoTable) {
	if memo == nil {
		return
	}
	l.addEvent(fmt.Sprintf("Memo table (len=%d): %s",
		memo.Len(), format.FormatMemoSlots(memo.Values(), memoDumpSlots)))
}

// AddResults appends the timing ranking, fastest first.
func (l *LogsModel) AddResults(results []orchestration.CalculationResult) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		l.addEvent(fmt.Sprintf("%s %s",
			logProgressStyle.Render(format.FormatSeconds(res.Duration)), res.Name))
	}
}

// AddFinalResult appends the fastest-strategy summary.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	res := msg.Result
	if res.Result == nil {
		return
	}
	l.addEvent(fmt.Sprintf("%s %s in %s",
		logSuccessStyle.Render("Fastest:"),
		logAlgoStyle.Render(res.Name),
		format.FormatExecutionDuration(res.Duration)))

	s := res.Result.String()
	value := s
	if len(value) > valueDisplayDigits {
		value = fmt.Sprintf("%s...%s", s[:10], s[len(s)-10:])
	}
	l.addEvent(fmt.Sprintf("%s = %s (%s digits)",
		logSuccessStyle.Render(fmt.Sprintf("F(%d)", msg.Opts.N)),
		value,
		format.FormatNumberString(fmt.Sprintf("%d", len(s)))))
}

// AddError appends a failed-run line.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.addEvent(logErrorStyle.Render(fmt.Sprintf("run failed after %s: %v",
		format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// addEvent appends one timestamped line to the feed.
func (l *LogsModel) addEvent(line string) {
	stamp := logTimeStyle.Render(time.Now().Format("15:04:05"))
	l.events = append(l.events, fmt.Sprintf(" %s %s", stamp, line))
}

// Reset clears the feed for a restarted run. The configuration block stays.
func (l *LogsModel) Reset() {
	l.events = nil
	l.offset = 0
	for i := range l.progress {
		l.progress[i] = 0
	}
}

// Update handles scroll keys.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := l.height - 2
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.scrollBy(1)
	case key.Matches(msg, l.keymap.Down):
		l.scrollBy(-1)
	case key.Matches(msg, l.keymap.PageUp):
		l.scrollBy(page)
	case key.Matches(msg, l.keymap.PageDown):
		l.scrollBy(-page)
	}
}

// scrollBy moves the window up (positive) or back toward the tail and
// clamps against the feed length.
func (l *LogsModel) scrollBy(delta int) {
	l.offset += delta
	maxOffset := len(l.allRows()) - (l.height - 2)
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// allRows composes the full feed: configuration, progress rows, events.
func (l LogsModel) allRows() []string {
	rows := make([]string, 0, len(l.configRows)+len(l.algoNames)+len(l.events)+2)
	rows = append(rows, l.configRows...)
	if len(l.algoNames) > 0 {
		rows = append(rows, "")
		barWidth := l.width - 34
		for i, name := range l.algoNames {
			rows = append(rows, l.progressRow(name, l.progress[i], barWidth))
		}
	}
	if len(l.events) > 0 {
		rows = append(rows, "")
		rows = append(rows, l.events...)
	}
	return rows
}

// progressRow renders one strategy's live progress line.
func (l LogsModel) progressRow(name string, progress float64, barWidth int) string {
	row := fmt.Sprintf(" %s %4.0f%%",
		logAlgoStyle.Render(fmt.Sprintf("%-18s", truncateString(name, 18))),
		progress*100)
	if barWidth >= 5 {
		filled := int(progress * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
		row += " " + logProgressStyle.Render(strings.Repeat("█", filled)) +
			chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	}
	return row
}

// renderToHeight renders the feed into a panel of exactly target total
// lines, showing the window selected by the scroll offset.
func (l LogsModel) renderToHeight(target int) string {
	inner := target - 2
	if inner < 1 {
		inner = 1
	}

	rows := l.allRows()
	end := len(rows) - l.offset
	if end < 0 {
		end = 0
	}
	start := end - inner
	if start < 0 {
		start = 0
	}

	return panelStyle.
		Width(l.width - 2).
		Height(inner).
		Render(strings.Join(rows[start:end], "\n"))
}

// truncateString shortens s to maxLen runes, eliding with dots.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
