package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/memory"
	"github.com/darksharpness/int2048/internal/metrics"
	"github.com/darksharpness/int2048/internal/sysmon"
)

// sparklineSamples is the number of evaluation times kept for the sparkline.
const sparklineSamples = 32

// StatsModel renders the status line: operation counts per algorithm,
// heap size, machine load and recent evaluation times.
type StatsModel struct {
	byAlgorithm map[string]int
	operations  int
	rejected    int
	mem         metrics.MemorySnapshot
	sys         sysmon.Usage
	durations   *DurationRing
	width       int
}

func NewStatsModel() StatsModel {
	return StatsModel{
		byAlgorithm: make(map[string]int),
		durations:   NewDurationRing(sparklineSamples),
	}
}

// Observe counts one operation reported by the evaluator.
func (s *StatsModel) Observe(op eval.Operation) {
	if op.Err != nil {
		s.rejected++
		return
	}
	s.operations++
	if op.Algorithm != eval.AlgLinear {
		s.byAlgorithm[op.Algorithm]++
	}
}

// AddDuration records the time of one evaluation.
func (s *StatsModel) AddDuration(d time.Duration) {
	s.durations.Push(d)
}

// Reset clears the counters and the recorded times.
func (s *StatsModel) Reset() {
	clear(s.byAlgorithm)
	s.operations, s.rejected = 0, 0
	s.durations.Reset()
}

// UpdateMemory stores the latest memory reading.
func (s *StatsModel) UpdateMemory(snap metrics.MemorySnapshot) {
	s.mem = snap
}

// UpdateSystem stores the latest machine-wide reading.
func (s *StatsModel) UpdateSystem(u sysmon.Usage) {
	s.sys = u
}

func (s *StatsModel) SetWidth(w int) {
	s.width = w
}

// View renders the stats line.
func (s StatsModel) View() string {
	var b strings.Builder
	stat := func(label string, value any) {
		if b.Len() > 0 {
			b.WriteString(statLabelStyle.Render("  "))
		}
		b.WriteString(statLabelStyle.Render(label+" ") + statValueStyle.Render(fmt.Sprint(value)))
	}
	stat("ops", s.operations)
	algs := make([]string, 0, len(s.byAlgorithm))
	for alg := range s.byAlgorithm {
		algs = append(algs, alg)
	}
	slices.Sort(algs)
	for _, alg := range algs {
		stat(alg, s.byAlgorithm[alg])
	}
	if s.rejected > 0 {
		stat("rejected", s.rejected)
	}
	if s.mem.HeapAlloc > 0 {
		stat("heap", memory.FormatBytes(s.mem.HeapAlloc))
	}
	if s.sys.Known() {
		stat("cpu", fmt.Sprintf("%.0f%%", s.sys.CPUPercent))
		stat("mem", fmt.Sprintf("%.0f%%", s.sys.MemPercent))
	}
	if line := RenderSparkline(s.durations.Slice()); line != "" {
		b.WriteString(statLabelStyle.Render("  times ") + sparklineStyle.Render(line))
	}
	return b.String()
}
