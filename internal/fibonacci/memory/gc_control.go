package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls garbage collector behavior while a memo table fills.
type GCMode string

// Modes in order of escalating intervention.
const (
	GCModeDisabled   GCMode = "disabled"
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
)

// GCAutoThreshold is the smallest index for which auto mode intervenes.
// Below it the table fill finishes before the collector would matter.
const GCAutoThreshold int64 = 1_000_000

// GCController pauses Go's garbage collector while a large bottom-up fill
// allocates its n+1 slots, then restores the original settings. Pausing
// avoids repeated collection cycles over a table that is all live anyway.
type GCController struct {
	mode          GCMode
	active        bool
	prevGCPercent int
	logger        zerolog.Logger
	before, after runtime.MemStats
}

// GCStats holds the collector statistics delta across one calculation.
type GCStats struct {
	TotalAlloc   uint64
	HeapAlloc    uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a controller for the given mode and index.
func NewGCController(mode string, n int64) *GCController {
	gc := &GCController{logger: zerolog.Nop(), mode: GCMode(mode)}
	switch gc.mode {
	case GCModeAuto:
		gc.active = n >= GCAutoThreshold
	case GCModeAggressive:
		gc.active = true
	}
	return gc
}

// SetLogger routes GC control events to the given logger.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether the controller will intervene.
func (gc *GCController) Active() bool {
	return gc.active
}

// softLimit is the OOM ceiling for the collector-off phase: three times the
// memory the process had already taken from the OS.
func softLimit(sys uint64) int64 {
	return int64(float64(sys) * 3)
}

// Begin disables the collector if the controller is active, keeping a soft
// memory limit as an OOM safety net.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.before)
	gc.prevGCPercent = debug.SetGCPercent(-1)
	if limit := softLimit(gc.before.Sys); limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.before.HeapAlloc).
		Msg("gc disabled for table fill")
}

// End restores the original collector settings and triggers one collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.after)
	debug.SetMemoryLimit(math.MaxInt64)
	debug.SetGCPercent(gc.prevGCPercent)
	runtime.GC()
	gc.logger.Debug().
		Uint64("heap_alloc_bytes", gc.after.HeapAlloc).
		Uint64("total_alloc_bytes", gc.after.TotalAlloc-gc.before.TotalAlloc).
		Uint32("gc_cycles", gc.after.NumGC-gc.before.NumGC).
		Str("mode", string(gc.mode)).
		Msg("gc restored")
}

// Stats returns the collector statistics delta between Begin and End.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		TotalAlloc:   gc.after.TotalAlloc - gc.before.TotalAlloc,
		HeapAlloc:    gc.after.HeapAlloc,
		NumGC:        gc.after.NumGC - gc.before.NumGC,
		PauseTotalNs: gc.after.PauseTotalNs - gc.before.PauseTotalNs,
	}
}
