package tui

import (
	"math"
	"time"
)

// sparklineChars are the eight block heights of a sparkline.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// DurationRing keeps the most recent evaluation times.
type DurationRing struct {
	data  []time.Duration
	head  int
	count int
}

// NewDurationRing creates a ring holding up to capacity samples.
func NewDurationRing(capacity int) *DurationRing {
	return &DurationRing{data: make([]time.Duration, max(capacity, 1))}
}

// Push adds a sample, overwriting the oldest when full.
func (r *DurationRing) Push(d time.Duration) {
	r.data[r.head] = d
	r.head = (r.head + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

func (r *DurationRing) Len() int { return r.count }

// Slice returns the samples oldest first.
func (r *DurationRing) Slice() []time.Duration {
	out := make([]time.Duration, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range r.count {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

func (r *DurationRing) Reset() {
	r.head, r.count = 0, 0
}

// RenderSparkline draws samples on a logarithmic scale between the
// smallest and largest of them, so microsecond and multi-second
// evaluations share one line.
func RenderSparkline(samples []time.Duration) string {
	if len(samples) == 0 {
		return ""
	}
	logs := make([]float64, len(samples))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, d := range samples {
		logs[i] = math.Log1p(float64(max(d, 0)))
		lo, hi = math.Min(lo, logs[i]), math.Max(hi, logs[i])
	}
	runes := make([]rune, len(samples))
	for i, v := range logs {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * 7)
		}
		runes[i] = sparklineChars[min(max(idx, 0), 7)]
	}
	return string(runes)
}
