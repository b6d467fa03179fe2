package metrics

import "testing"

func TestReadMemory(t *testing.T) {
	t.Parallel()

	snap := ReadMemory()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc = 0, want > 0 in a running process")
	}
	if snap.Sys == 0 {
		t.Error("Sys = 0, want > 0 in a running process")
	}
}

func TestReadMemory_Monotonic(t *testing.T) {
	t.Parallel()

	before := ReadMemory()
	buf := make([]byte, 1<<20)
	after := ReadMemory()

	// TotalAlloc and Sys only ever grow.
	if after.TotalAlloc < before.TotalAlloc {
		t.Errorf("TotalAlloc went from %d to %d, want non-decreasing", before.TotalAlloc, after.TotalAlloc)
	}
	if after.Sys < before.Sys {
		t.Errorf("Sys went from %d to %d, want non-decreasing", before.Sys, after.Sys)
	}
	_ = buf
}
