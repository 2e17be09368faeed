// Package memory controls the Go garbage collector around a measurement so
// that collector pauses do not land inside timed calls.
package memory

import (
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior during a measurement.
type GCMode string

const (
	// GCModeOn leaves the collector untouched.
	GCModeOn GCMode = "on"
	// GCModeOff disables the collector between Begin and End.
	GCModeOff GCMode = "off"
)

// memoryLimitFactor bounds heap growth while the collector is off, as a
// multiple of the memory obtained from the OS at Begin.
const memoryLimitFactor = 3

// GCController disables the collector for the duration of one measurement and
// restores the previous settings afterward. It is not safe for concurrent use.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	originalMemLimit  int64
	active            bool
	logger            zerolog.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// GCStats holds collector statistics between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	Mallocs      uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a controller for mode. Unknown modes behave as
// GCModeOn.
func NewGCController(mode string) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	gc.active = gc.mode == GCModeOff
	return gc
}

// SetLogger configures the logger for collector events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin disables the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin collects once, then disables the collector if the controller is
// active. Statistics are recorded in both modes.
func (gc *GCController) Begin() {
	if gc.active {
		runtime.GC()
	}
	runtime.ReadMemStats(&gc.startStats)
	if !gc.active {
		return
	}
	gc.originalGCPercent = debug.SetGCPercent(-1)
	gc.originalMemLimit = debug.SetMemoryLimit(-1)
	if gc.startStats.Sys > 0 {
		limit := int64(gc.startStats.Sys) * memoryLimitFactor
		if limit > 0 {
			debug.SetMemoryLimit(limit)
		}
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc).
		Msg("gc disabled")
}

// End restores the collector settings found at Begin, including a memory
// limit set through GOMEMLIMIT, and records statistics.
func (gc *GCController) End() {
	runtime.ReadMemStats(&gc.endStats)
	if !gc.active {
		return
	}
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(gc.originalMemLimit)
	runtime.GC()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.endStats.HeapAlloc).
		Uint64("total_alloc_bytes", gc.endStats.TotalAlloc-gc.startStats.TotalAlloc).
		Uint32("gc_cycles", gc.endStats.NumGC-gc.startStats.NumGC).
		Msg("gc re-enabled")
}

// Stats returns the statistics delta between Begin and End.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		Mallocs:      gc.endStats.Mallocs - gc.startStats.Mallocs,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}
