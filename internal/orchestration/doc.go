// Package orchestration coordinates the execution of Fibonacci strategy
// comparisons and reduces their results to a report and an exit code.
// Execution is sequential by default so wall-clock timings are not skewed
// by sibling strategies; an errgroup-based parallel mode is available.
// Presentation is decoupled via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
