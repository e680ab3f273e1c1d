package tui

import (
	"slices"
	"testing"
	"time"
)

func TestDurationRing(t *testing.T) {
	t.Parallel()
	r := NewDurationRing(3)
	if r.Len() != 0 || len(r.Slice()) != 0 {
		t.Fatal("new ring not empty")
	}
	for _, d := range []time.Duration{1, 2, 3, 4} {
		r.Push(d)
	}
	if got := r.Slice(); !slices.Equal(got, []time.Duration{2, 3, 4}) {
		t.Errorf("Slice() = %v, want [2 3 4]", got)
	}
	r.Reset()
	r.Push(9)
	if got := r.Slice(); !slices.Equal(got, []time.Duration{9}) {
		t.Errorf("after Reset, Slice() = %v", got)
	}
}

func TestDurationRingZeroCapacity(t *testing.T) {
	t.Parallel()
	r := NewDurationRing(0)
	r.Push(5)
	r.Push(6)
	if got := r.Slice(); !slices.Equal(got, []time.Duration{6}) {
		t.Errorf("Slice() = %v, want [6]", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		samples []time.Duration
		want    string
	}{
		{nil, ""},
		{[]time.Duration{time.Millisecond}, "▁"},
		{[]time.Duration{time.Second, time.Second}, "▁▁"},
		{[]time.Duration{time.Microsecond, time.Second}, "▁█"},
		{[]time.Duration{time.Second, time.Microsecond, time.Second}, "█▁█"},
	}
	for _, tt := range tests {
		if got := RenderSparkline(tt.samples); got != tt.want {
			t.Errorf("RenderSparkline(%v) = %q, want %q", tt.samples, got, tt.want)
		}
	}
	mid := []rune(RenderSparkline([]time.Duration{time.Microsecond, time.Millisecond, time.Second}))[1]
	if mid == '▁' || mid == '█' {
		t.Errorf("a millisecond between 1µs and 1s rendered as %q", mid)
	}
}

func TestSpaces(t *testing.T) {
	t.Parallel()
	if spaces(-1) != "" || spaces(3) != "   " {
		t.Error("spaces mismatch")
	}
}
