// Package sysmon samples machine-wide CPU and memory usage for the
// interactive calculator's status panel.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Usage is one machine-wide reading, in percent.
type Usage struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Known reports whether the platform returned a reading.
func (u Usage) Known() bool { return u.MemPercent > 0 }

// Sample takes a reading. CPU usage is the delta since the previous call,
// so the first reading of a process may show 0. Failed probes leave their
// field at zero.
func Sample(ctx context.Context) Usage {
	var u Usage
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		u.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		u.MemPercent = vm.UsedPercent
	}
	return u
}
