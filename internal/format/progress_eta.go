package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// rateSmoothingFactor weights the newest rate sample when smoothing the
	// progress rate. Smaller values favor history and steadier ETAs.
	rateSmoothingFactor = 0.3
	// maxETA caps the reported estimate; beyond a day the number carries no
	// information the user can act on.
	maxETA = 24 * time.Hour
)

// ProgressState tracks per-calculator progress values and aggregates them
// into a single average. Values are clamped to [0, 1] and updates with an
// out-of-range calculator index are ignored.
type ProgressState struct {
	mu             sync.Mutex
	numCalculators int
	progresses     []float64
}

// NewProgressState creates a tracker for the given number of calculators.
func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		numCalculators: numCalculators,
		progresses:     make([]float64, numCalculators),
	}
}

// Update records the progress of one calculator.
func (ps *ProgressState) Update(calcIndex int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if calcIndex < 0 || calcIndex >= len(ps.progresses) {
		return
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	ps.progresses[calcIndex] = value
}

// CalculateAverage returns the mean progress across all calculators.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate from
// which a remaining-time estimate is derived. The rate is exponentially
// smoothed so a single fast burst does not collapse the estimate.
type ProgressWithETA struct {
	*ProgressState
	progressRate float64 // smoothed progress per second
	startTime    time.Time
	lastUpdate   time.Time
	lastAverage  float64
}

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// given number of calculators.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numCalculators),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records one progress update and returns the new average
// progress together with the current remaining-time estimate.
func (p *ProgressWithETA) UpdateWithETA(calcIndex int, value float64) (float64, time.Duration) {
	p.Update(calcIndex, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if !p.lastUpdate.IsZero() {
		elapsed := now.Sub(p.lastUpdate).Seconds()
		if elapsed > 0 {
			instantRate := (avg - p.lastAverage) / elapsed
			if instantRate >= 0 {
				if p.progressRate == 0 {
					p.progressRate = instantRate
				} else {
					p.progressRate = rateSmoothingFactor*instantRate + (1-rateSmoothingFactor)*p.progressRate
				}
			}
		}
	}
	p.lastUpdate = now
	p.lastAverage = avg

	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining, zero while no usable rate has
// been observed. The estimate is capped at maxETA.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders a remaining-time estimate in a compact human form.
// Non-positive estimates render as "calculating..." since they mean no rate
// has been observed yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar renders a fixed-width bar of filled and unfilled cells.
// Progress outside [0, 1] is clamped.
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines a progress bar, a percentage and an ETA
// into one status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress >= 1 {
		return fmt.Sprintf("[%s] 100.0%% ETA: 0s", ProgressBar(1, width))
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
