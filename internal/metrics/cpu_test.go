//go:build unix

package metrics

import "testing"

func TestProcessCPUTimes(t *testing.T) {
	t.Parallel()

	times, ok := ProcessCPUTimes()
	if !ok {
		t.Fatal("getrusage should succeed on unix")
	}
	if times.User < 0 || times.System < 0 {
		t.Errorf("CPU times should be non-negative, got user=%v system=%v", times.User, times.System)
	}
	if times.MaxRSS <= 0 {
		t.Errorf("MaxRSS should be > 0, got %d", times.MaxRSS)
	}
	if times.Total() != times.User+times.System {
		t.Error("Total should be the sum of user and system time")
	}
}
