package metrics

import "runtime"

// MemorySnapshot is one reading of the Go runtime's memory accounting, the
// subset the details report prints.
type MemorySnapshot struct {
	// HeapAlloc is bytes of live heap objects.
	HeapAlloc uint64
	// TotalAlloc is cumulative bytes allocated over the process lifetime.
	TotalAlloc uint64
	// Sys is total bytes obtained from the operating system.
	Sys uint64
	// NumGC counts completed collection cycles.
	NumGC uint32
	// PauseTotalNs is cumulative stop-the-world pause time.
	PauseTotalNs uint64
}

// ReadMemory captures the current runtime memory statistics.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}
