package threshold

import (
	"testing"
	"time"

	"github.com/darksharpness/int2048/bigint"
	"github.com/darksharpness/int2048/internal/eval"
)

// newTestManager returns a manager whose adjustments are captured instead of
// installed globally.
func newTestManager(mul, div int) (*DynamicThresholdManager, *[]bigint.Thresholds) {
	m := NewDynamicThresholdManager(mul, div)
	var applied []bigint.Thresholds
	m.SetApplier(func(t bigint.Thresholds) { applied = append(applied, t) })
	return m, &applied
}

func TestNewDynamicThresholdManager(t *testing.T) {
	t.Parallel()
	m := NewDynamicThresholdManager(48, 64)
	mul, div := m.GetThresholds()
	if mul != 48 || div != 64 {
		t.Errorf("GetThresholds() = %d, %d; want 48, 64", mul, div)
	}
}

func TestNewDynamicThresholdManagerFromConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		cfg          Config
		expectNil    bool
		wantInterval int
	}{
		{"disabled returns nil", Config{Enabled: false}, true, 0},
		{"explicit interval", Config{Enabled: true, InitialMul: 32, InitialDiv: 40, AdjustmentInterval: 10}, false, 10},
		{"zero interval uses default", Config{Enabled: true, InitialMul: 32, InitialDiv: 40}, false, DynamicAdjustmentInterval},
		{"negative interval uses default", Config{Enabled: true, InitialMul: 32, InitialDiv: 40, AdjustmentInterval: -5}, false, DynamicAdjustmentInterval},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewDynamicThresholdManagerFromConfig(tc.cfg)
			if tc.expectNil {
				if m != nil {
					t.Error("expected nil manager")
				}
				return
			}
			if m == nil {
				t.Fatal("expected non-nil manager")
			}
			if m.adjustmentInterval != tc.wantInterval {
				t.Errorf("interval = %d, want %d", m.adjustmentInterval, tc.wantInterval)
			}
			if mul, div := m.GetThresholds(); mul != 32 || div != 40 {
				t.Errorf("thresholds = %d, %d", mul, div)
			}
		})
	}
}

func TestOnOperationFiltersEvents(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(48, 64)
	for _, op := range []eval.Operation{
		{Op: "+", Algorithm: eval.AlgLinear, LhsLimbs: 10, RhsLimbs: 10},
		{Op: "*", Algorithm: "zero", LhsLimbs: 0, RhsLimbs: 10},
		{Op: "/", Algorithm: "word", LhsLimbs: 10, RhsLimbs: 1},
		{Op: "/", Algorithm: "small", LhsLimbs: 1, RhsLimbs: 10},
		{Op: "*", Algorithm: "brute", LhsLimbs: 10, RhsLimbs: 10, Err: errTest},
		{Op: "shl", Algorithm: eval.AlgLinear, LhsLimbs: 1, RhsLimbs: 1},
	} {
		m.OnOperation(op)
	}
	if got := m.GetStats().OperationsProcessed; got != 0 {
		t.Errorf("recorded %d irrelevant operations", got)
	}

	m.OnOperation(eval.Operation{Op: "*", Algorithm: "fft", LhsLimbs: 64, RhsLimbs: 64, Duration: time.Millisecond})
	m.OnOperation(eval.Operation{Op: "%", Algorithm: "newton", LhsLimbs: 400, RhsLimbs: 100, Duration: time.Millisecond})
	if got := m.GetStats().OperationsProcessed; got != 2 {
		t.Errorf("OperationsProcessed = %d, want 2", got)
	}
	metrics := m.activeMetrics()
	if !metrics[0].Transform || metrics[0].Div || metrics[0].Work != 64*64 {
		t.Errorf("product metric = %+v", metrics[0])
	}
	if !metrics[1].Transform || !metrics[1].Div {
		t.Errorf("quotient metric = %+v", metrics[1])
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("rejected")

func TestFastTransformLowersThreshold(t *testing.T) {
	t.Parallel()
	m, applied := newTestManager(100, 64)
	// Brute force costs 10ns per unit of work, the transform 1ns.
	for range 2 {
		m.OnOperation(eval.Operation{Op: "*", Algorithm: "brute", LhsLimbs: 90, RhsLimbs: 90, Duration: 81000 * time.Nanosecond})
		m.OnOperation(eval.Operation{Op: "*", Algorithm: "fft", LhsLimbs: 100, RhsLimbs: 100, Duration: 10000 * time.Nanosecond})
	}
	m.OnOperation(eval.Operation{Op: "*", Algorithm: "fft", LhsLimbs: 100, RhsLimbs: 100, Duration: 10000 * time.Nanosecond})

	mul, div := m.GetThresholds()
	if mul != 80 || div != 64 {
		t.Errorf("thresholds = %d, %d; want 80, 64", mul, div)
	}
	if len(*applied) != 1 || (*applied)[0].BruteForceMulLimbs != 80 {
		t.Errorf("applied = %+v", *applied)
	}
	if s := m.GetStats(); s.Adjustments != 1 || s.OriginalMul != 100 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSlowTransformRaisesThresholdUpToCap(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(64, 100)
	slow := OpMetric{Div: true, Work: 100, Duration: 100 * time.Nanosecond}
	fast := OpMetric{Div: true, Work: 100, Duration: 1000 * time.Nanosecond, Transform: true}

	for round := range 10 {
		for i := range DynamicAdjustmentInterval {
			if i%2 == 0 {
				m.Record(slow)
			} else {
				m.Record(fast)
			}
		}
		m.ShouldAdjust()
		if _, div := m.GetThresholds(); div > 200 {
			t.Fatalf("round %d: div threshold %d exceeds twice the original", round, div)
		}
	}
	mul, div := m.GetThresholds()
	if div != 200 {
		t.Errorf("div threshold = %d, want the cap 200", div)
	}
	if mul != 64 {
		t.Errorf("mul threshold moved to %d without product metrics", mul)
	}
}

func TestHysteresis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		old, new int
		want     bool
	}{
		{100, 100, false},
		{100, 110, false},
		{100, 115, false},
		{100, 120, true},
		{100, 80, true},
		{0, 5, true},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := significantChange(tt.old, tt.new); got != tt.want {
			t.Errorf("significantChange(%d, %d) = %v, want %v", tt.old, tt.new, got, tt.want)
		}
	}
}

func TestBalancedCostsKeepThreshold(t *testing.T) {
	t.Parallel()
	m, applied := newTestManager(48, 64)
	for i := range 20 {
		m.Record(OpMetric{Work: 100, Duration: 100 * time.Nanosecond, Transform: i%2 == 0})
		if _, _, ok := m.ShouldAdjust(); ok {
			t.Fatalf("adjusted after %d equal-cost metrics", i+1)
		}
	}
	if len(*applied) != 0 {
		t.Errorf("applied = %+v", *applied)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	m, applied := newTestManager(100, 64)
	m.currentMul = 80
	m.Record(OpMetric{Work: 1, Duration: 1})
	m.Reset()

	s := m.GetStats()
	if s.CurrentMul != 100 || s.MetricsCollected != 0 || s.OperationsProcessed != 0 {
		t.Errorf("stats after Reset = %+v", s)
	}
	if n := len(*applied); n != 1 || (*applied)[0].BruteForceMulLimbs != 100 {
		t.Errorf("Reset applied %+v", *applied)
	}
}

func TestRingBufferWraps(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(48, 64)
	for range MaxMetricsHistory + 7 {
		m.Record(OpMetric{Work: 1, Duration: 1})
	}
	s := m.GetStats()
	if s.MetricsCollected != MaxMetricsHistory || s.OperationsProcessed != MaxMetricsHistory+7 {
		t.Errorf("stats = %+v", s)
	}
	if m.metricsHead != 7 {
		t.Errorf("head = %d, want 7", m.metricsHead)
	}
}
