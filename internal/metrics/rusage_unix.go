//go:build unix

package metrics

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// ProcessCPUTimes reads getrusage(2) for the current process. The boolean
// reports whether the reading succeeded.
func ProcessCPUTimes() (CPUTimes, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return CPUTimes{}, false
	}

	// ru_maxrss is kilobytes everywhere except Darwin, which reports bytes.
	maxRSS := int64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		maxRSS *= 1024
	}

	return CPUTimes{
		User:   time.Duration(ru.Utime.Nano()),
		System: time.Duration(ru.Stime.Nano()),
		MaxRSS: maxRSS,
	}, true
}
