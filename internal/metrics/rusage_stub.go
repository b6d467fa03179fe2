//go:build !unix

package metrics

// ProcessCPUTimes is unavailable on this platform.
func ProcessCPUTimes() (CPUTimes, bool) {
	return CPUTimes{}, false
}
