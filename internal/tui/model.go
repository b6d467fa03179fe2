package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/config"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	logsPanelWidthPercent = 60
	metricsPanelHeight    = 7 // compact: memory rows only; grows when indicators arrive
)

// windowSize carries the terminal dimensions and derives every panel's slice
// of them. The logs panel takes the left column; metrics and chart stack in
// the right one.
type windowSize struct {
	width  int
	height int
}

func (s windowSize) bodyHeight() int {
	return max(s.height-headerHeight-footerHeight, minBodyHeight)
}

func (s windowSize) logsWidth() int {
	return s.width * logsPanelWidthPercent / 100
}

func (s windowSize) rightWidth() int {
	return s.width - s.logsWidth()
}

func (s windowSize) metricsHeight() int {
	return min(metricsPanelHeight, s.bodyHeight()/2)
}

func (s windowSize) chartHeight() int {
	return s.bodyHeight() - s.metricsHeight()
}

// Model is the bubbletea root for the dashboard. It owns the panel models
// and the lifecycle of the benchmark run they observe.
type Model struct {
	keymap KeyMap
	size   windowSize

	header  HeaderModel
	footer  FooterModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel

	parentCtx   context.Context
	ctx         context.Context
	cancel      context.CancelFunc
	calculators []fibonacci.Calculator
	config      config.AppConfig
	ref         *programRef

	// generation stamps the messages of one run so a restart can ignore
	// stragglers from the previous one.
	generation uint64
	paused     bool
	done       bool
	exitCode   int
}

// NewModel assembles the dashboard for one set of calculators.
func NewModel(parentCtx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string) Model {
	names := make([]string, len(calculators))
	for i, calc := range calculators {
		names[i] = calc.Name()
	}

	logs := NewLogsModel(names)
	logs.AddExecutionConfig(cfg)

	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		keymap:      DefaultKeyMap(),
		header:      NewHeaderModel(version),
		footer:      NewFooterModel(),
		logs:        logs,
		metrics:     NewMetricsModel(),
		chart:       NewChartModel(),
		parentCtx:   parentCtx,
		ctx:         ctx,
		cancel:      cancel,
		calculators: calculators,
		config:      cfg,
		ref:         &programRef{},
		exitCode:    apperrors.ExitSuccess,
	}
}

// runCmds builds the command set that drives one run: the refresh tick, the
// benchmark itself and the cancellation watch.
func (m Model) runCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.calculators, m.config, m.generation),
		watchCancelCmd(m.ctx, m.generation),
	)
}

// Init starts the first run.
func (m Model) Init() tea.Cmd { return m.runCmds() }

// stale reports whether a run-scoped message belongs to a previous
// generation.
func (m Model) stale(gen uint64) bool { return gen != m.generation }

// Update routes each message to the panel that owns it. Run-scoped messages
// carry a generation stamp and are dropped when they arrive after a restart.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = windowSize{width: msg.Width, height: msg.Height}
		m.layoutPanels()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		switch {
		case m.done:
			return m, nil
		case m.paused:
			return m, tickCmd()
		}
		return m, tea.Batch(memStatsCmd(), sysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)

	case ProgressMsg:
		if m.paused {
			return m, nil
		}
		m.logs.AddProgressEntry(msg)
		m.chart.AddDataPoint(msg.Value, msg.AverageProgress, msg.ETA)
		m.metrics.UpdateProgress(msg.AverageProgress)
		running := time.Since(m.header.startTime)
		m.metrics.UpdateIndicators(metrics.ComputeLive(m.config.N, msg.AverageProgress, running))

	case StrategyLinesMsg:
		m.logs.AddStrategyLines(msg)

	case MemoTableMsg:
		m.logs.AddMemoDump(msg.Memo)

	case ComparisonResultsMsg:
		m.logs.AddResults(msg.Results)

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		if msg.Result.Result != nil {
			// Digit counting on a huge result is too slow for the
			// update loop, so indicators arrive as their own message.
			return m, computeIndicatorsCmd(msg)
		}

	case IndicatorsMsg:
		m.metrics.UpdateIndicators(msg.Indicators)

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		return m.finishRun(), nil

	case CalculationCompleteMsg:
		if m.stale(msg.Generation) {
			return m, nil
		}
		m.exitCode = msg.ExitCode
		return m.finishRun(), nil

	case ContextCancelledMsg:
		if m.stale(msg.Generation) {
			return m, nil
		}
		return m.finishRun(), tea.Quit
	}

	return m, nil
}

// finishRun freezes the clocks and flips the footer to its done state.
func (m Model) finishRun() Model {
	m.done = true
	m.header.SetDone()
	m.chart.SetDone(time.Since(m.header.startTime))
	m.footer.SetDone(true)
	return m
}

// togglePause flips the paused flag and mirrors it in the footer.
func (m Model) togglePause() Model {
	m.paused = !m.paused
	m.footer.SetPaused(m.paused)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up),
		key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp),
		key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)

	case key.Matches(msg, m.keymap.Pause):
		return m.togglePause(), nil

	case key.Matches(msg, m.keymap.Reset):
		return m.restartRun()

	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

// restartRun aborts the current run, clears every panel and launches a fresh
// run under a new generation.
func (m Model) restartRun() (tea.Model, tea.Cmd) {
	m.cancel()
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)

	m.header.Reset()
	m.logs.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(m.size.rightWidth(), m.size.metricsHeight())
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.done = false
	m.paused = false
	m.exitCode = apperrors.ExitSuccess

	return m, m.runCmds()
}

// View assembles the dashboard frame.
func (m Model) View() string {
	if m.size.width == 0 || m.size.height == 0 {
		return "Starting..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())

	// The logs panel stretches to whatever height the right column ended
	// up with, so the two columns always bottom-align.
	left := m.logs.renderToHeight(lipgloss.Height(right))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.size.width)
	m.footer.SetWidth(m.size.width)
	m.logs.SetSize(m.size.logsWidth(), m.size.bodyHeight())
	m.metrics.SetSize(m.size.rightWidth(), m.size.metricsHeight())
	m.chart.SetSize(m.size.rightWidth(), m.size.chartHeight())
}

// Run is the entry point for dashboard mode. It blocks until the user quits
// or the session context ends, then reports the exit code the equivalent CLI
// run would have produced.
func Run(ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string) int {
	// The app applied the configured theme after this package's init ran,
	// so rebuild the styles from the now-active theme.
	initTUIStyles()

	root := NewModel(ctx, calculators, cfg, version)
	defer root.cancel()

	prog := tea.NewProgram(root, tea.WithAltScreen())
	// The bridge goroutines need the program before the first message
	// can flow.
	root.ref.SetProgram(prog)

	final, err := prog.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	m, ok := final.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	m.cancel()
	return m.exitCode
}

// startRunCmd launches the benchmark on a background goroutine. Progress and
// report messages flow through the bridge while it runs; the returned message
// only delivers the final exit code.
func startRunCmd(ref *programRef, ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		opts := cfg.ToCalculationOptions()
		execute := orchestration.ExecuteCalculations
		if cfg.Parallel {
			execute = orchestration.ExecuteCalculationsParallel
		}
		results := execute(ctx, calculators, cfg.N, opts, reporter, io.Discard)

		reportOpts := orchestration.PresentationOptions{
			N:         cfg.N,
			ShowValue: cfg.ShowValue,
			Verbose:   cfg.Verbose,
			Details:   cfg.Details,
			Memo:      orchestration.SelectMemoForDump(calculators, cfg.N),
		}
		code := orchestration.AnalyzeComparisonResults(results, reportOpts, presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: code, Generation: gen}
	}
}

// refreshInterval paces the stats sampling and the clock redraw.
const refreshInterval = 500 * time.Millisecond

// tickCmd schedules the next refresh tick.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// memStatsCmd snapshots the Go runtime's memory counters.
func memStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		return MemStatsMsg{
			NumGoroutine: runtime.NumGoroutine(),
			Alloc:        mem.Alloc,
			HeapInuse:    mem.HeapInuse,
			NumGC:        mem.NumGC,
			PauseTotalNs: mem.PauseTotalNs,
		}
	}
}

// sysStatsCmd samples host-wide CPU and memory pressure.
func sysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		host := sysmon.Sample()
		return SysStatsMsg{CPUPercent: host.CPUPercent, MemPercent: host.MemPercent}
	}
}

// computeIndicatorsCmd derives the throughput indicators from a finished
// result off the update loop.
func computeIndicatorsCmd(msg FinalResultMsg) tea.Cmd {
	return func() tea.Msg {
		return IndicatorsMsg{
			Indicators: metrics.Compute(msg.Result.Result, msg.Opts.N, msg.Result.Duration),
		}
	}
}

// watchCancelCmd turns context cancellation into a message so the update
// loop can shut the program down.
func watchCancelCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Generation: gen, Err: ctx.Err()}
	}
}
