package metrics

import "time"

// CPUTimes holds the process CPU accounting read from the operating system.
type CPUTimes struct {
	// User is the CPU time spent in user mode.
	User time.Duration
	// System is the CPU time spent in kernel mode.
	System time.Duration
	// MaxRSS is the peak resident set size in bytes.
	MaxRSS int64
}

// Total returns combined user and system time.
func (c CPUTimes) Total() time.Duration {
	return c.User + c.System
}
