//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/progress"
)

const (
	// TruncationLimit is the digit count above which a value is shown
	// edges-only in standard output.
	TruncationLimit = 100
	// DisplayEdges is how many leading and trailing digits a truncated
	// value keeps.
	DisplayEdges = 25
	// ProgressRefreshRate paces both the spinner animation and the bar
	// redraw.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar width in characters.
	ProgressBarWidth = 40
)

// Spinner is the minimal control surface of a terminal spinner. The
// progress loop depends on this interface so tests can substitute a mock
// for the real animation.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts briandowns/spinner to the Spinner interface.
type realSpinner struct {
	sp *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.sp.Start() }
func (rs *realSpinner) Stop() { rs.sp.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.sp.Suffix = suffix
}

// newSpinner is a hook for tests to intercept spinner construction.
var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// DisplayProgress consumes progress updates and renders a spinner with an
// aggregated progress bar and ETA. It runs until progressChan is closed and
// signals wg when done. With zero calculators it only drains the channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	if numCalculators <= 0 {
		for range progressChan {
		}
		return
	}

	state := format.NewProgressWithETA(numCalculators)

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(" " + format.FormatProgressBarWithETA(1, 0, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(" " + format.FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth))
		}
	}
}
