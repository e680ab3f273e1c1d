package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// register exposes the snapshot fields as gauges read at gather time.
func (mc *MemoryCollector) register(reg prometheus.Registerer) {
	gauge := func(name, help string, read func(MemorySnapshot) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return read(mc.Snapshot()) })
	}
	reg.MustRegister(
		gauge("heap_alloc_bytes", "Bytes of allocated heap objects.",
			func(s MemorySnapshot) float64 { return float64(s.HeapAlloc) }),
		gauge("sys_bytes", "Bytes obtained from the OS.",
			func(s MemorySnapshot) float64 { return float64(s.Sys) }),
		gauge("gc_cycles", "Completed GC cycles.",
			func(s MemorySnapshot) float64 { return float64(s.NumGC) }),
	)
}
