package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/metrics"
	"github.com/darksharpness/int2048/internal/sysmon"
)

func TestStatsModel(t *testing.T) {
	t.Parallel()
	s := NewStatsModel()
	s.Observe(eval.Operation{Op: "*", Algorithm: "fft"})
	s.Observe(eval.Operation{Op: "*", Algorithm: "brute"})
	s.Observe(eval.Operation{Op: "*", Algorithm: "fft"})
	s.Observe(eval.Operation{Op: "+", Algorithm: eval.AlgLinear})
	s.Observe(eval.Operation{Op: "/", Err: errors.New("division by zero")})
	s.UpdateMemory(metrics.MemorySnapshot{HeapAlloc: 2048})
	s.UpdateSystem(sysmon.Usage{CPUPercent: 37.4, MemPercent: 61.6})
	s.AddDuration(time.Millisecond)

	view := s.View()
	for _, want := range []string{"ops 4", "brute 1", "fft 2", "rejected 1", "heap 2.00 KiB", "cpu 37%", "mem 62%", "times "} {
		if !strings.Contains(view, want) {
			t.Errorf("View() = %q lacks %q", view, want)
		}
	}
	if strings.Index(view, "brute") > strings.Index(view, "fft") {
		t.Error("algorithms not sorted")
	}
	if strings.Contains(view, "linear") {
		t.Error("linear operations listed as an algorithm")
	}

	s.Reset()
	view = s.View()
	if !strings.Contains(view, "ops 0") || strings.Contains(view, "fft") || strings.Contains(view, "times") {
		t.Errorf("after Reset, View() = %q", view)
	}
}
