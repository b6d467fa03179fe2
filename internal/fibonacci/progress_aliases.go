package fibonacci

import "github.com/agbru/fibbench/internal/progress"

// The progress machinery lives in internal/progress. The fibonacci API
// surfaces the subset its own signatures mention, so callers of this
// package need no second import.
type (
	ProgressUpdate   = progress.ProgressUpdate
	ProgressCallback = progress.ProgressCallback
	ProgressSubject  = progress.ProgressSubject
	StepTracker      = progress.StepTracker
)

var (
	NewProgressSubject = progress.NewProgressSubject
	NewChannelObserver = progress.NewChannelObserver
	NewStepTracker     = progress.NewStepTracker

	CalcLinearWork    = progress.CalcLinearWork
	CalcRecursiveWork = progress.CalcRecursiveWork
)
