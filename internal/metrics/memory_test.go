package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/darksharpness/int2048/internal/eval"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestOpRecorder_OnOperation(t *testing.T) {
	t.Parallel()

	r := NewOpRecorder()
	r.OnOperation(eval.Operation{Op: "*", Algorithm: "fft", LhsLimbs: 64, RhsLimbs: 50, Duration: time.Millisecond})
	r.OnOperation(eval.Operation{Op: "*", Algorithm: "fft", LhsLimbs: 64, RhsLimbs: 64, Duration: time.Millisecond})
	r.OnOperation(eval.Operation{Op: "*", Algorithm: "brute", LhsLimbs: 2, RhsLimbs: 2})
	r.OnOperation(eval.Operation{Op: "/", Err: errRejected})

	var sb strings.Builder
	if err := r.WriteText(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`int2048_operations_total{algorithm="fft",op="*"} 2`,
		`int2048_operations_total{algorithm="brute",op="*"} 1`,
		`int2048_operation_failures_total{op="/"} 1`,
		`int2048_operand_limbs_sum 130`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `int2048_operations_total{algorithm="",op="/"}`) {
		t.Error("rejected operation counted as evaluated")
	}
}

type rejected struct{}

func (rejected) Error() string { return "rejected" }

var errRejected = rejected{}

func TestOpRecorder_WriteText(t *testing.T) {
	t.Parallel()

	r := NewOpRecorder()
	r.OnOperation(eval.Operation{Op: "+", Algorithm: eval.AlgLinear, LhsLimbs: 3, RhsLimbs: 1, Duration: time.Microsecond})

	var sb strings.Builder
	if err := r.WriteText(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`int2048_operations_total{algorithm="linear",op="+"} 1`,
		"# TYPE int2048_operation_duration_seconds histogram",
		"int2048_operand_limbs_count 1",
		"int2048_heap_alloc_bytes",
		"int2048_gc_cycles",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}
