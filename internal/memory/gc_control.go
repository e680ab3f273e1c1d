package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior around large operations.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoLimbs is the operand size, in limbs, from which auto mode suspends
// the collector. Below it the transform buffers come from the pools and
// the collector has little to do.
const GCAutoLimbs = 1 << 17

// GCController suspends Go's garbage collector for the duration of one very
// large operation and restores it afterward. A soft memory limit stays in
// place as an OOM safety net while the collector is off.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            zerolog.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// GCStats holds GC statistics for an operation.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a GC controller for the given mode and operand
// size in limbs.
func NewGCController(mode GCMode, limbs int) *GCController {
	gc := &GCController{mode: mode, logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = limbs >= GCAutoLimbs
	default:
		gc.active = false
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will suspend the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin disables GC if the controller is active.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.startStats)
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if gc.startStats.Sys > 0 {
		limit := int64(float64(gc.startStats.Sys) * 3)
		if limit > 0 {
			debug.SetMemoryLimit(limit)
		}
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc).
		Msg("gc disabled")
}

// End restores original GC settings and triggers a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.endStats)
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.endStats.HeapAlloc).
		Uint64("total_alloc_bytes", gc.endStats.TotalAlloc-gc.startStats.TotalAlloc).
		Uint32("gc_cycles", gc.endStats.NumGC-gc.startStats.NumGC).
		Msg("gc re-enabled")
}

// Stats returns GC statistics delta between Begin and End.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}
