// Package threshold adjusts the kernel's brute-force crossover points while
// the calculator runs, from the timings of the products and quotients it
// observes.
package threshold

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/darksharpness/int2048/bigint"
	"github.com/darksharpness/int2048/internal/eval"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dynamic Threshold Configuration
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DynamicAdjustmentInterval is the number of recorded operations between
	// threshold checks.
	DynamicAdjustmentInterval = 5

	// MinMetricsForAdjustment is the minimum number of metrics needed before adjusting.
	MinMetricsForAdjustment = 3

	// MaxMetricsHistory is the maximum number of metrics to keep for analysis.
	MaxMetricsHistory = 20

	// TransformSpeedupThreshold is the minimum cost ratio between the two
	// paths before the crossover moves.
	TransformSpeedupThreshold = 1.2

	// HysteresisMargin prevents oscillating between modes.
	// Threshold must change by at least this factor to trigger adjustment.
	HysteresisMargin = 0.15

	// MinLimbs is the floor of both thresholds.
	MinLimbs = 8
)

// DynamicThresholdManager moves the multiplication and division crossover
// points based on observed per-limb costs. It implements eval.Observer.
type DynamicThresholdManager struct {
	mu     sync.Mutex
	logger zerolog.Logger
	apply  func(bigint.Thresholds)

	currentMul, currentDiv   int
	originalMul, originalDiv int

	// Ring buffer of the most recent metrics.
	metrics      [MaxMetricsHistory]OpMetric
	metricsCount int
	metricsHead  int

	adjustmentInterval int
	adjustments        int
	lastAdjustment     time.Time
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructor and Configuration
// ─────────────────────────────────────────────────────────────────────────────

// NewDynamicThresholdManager creates a manager starting from the given
// brute-force limits. Adjustments are installed with bigint.SetThresholds.
func NewDynamicThresholdManager(mulLimbs, divLimbs int) *DynamicThresholdManager {
	return &DynamicThresholdManager{
		logger:             zerolog.Nop(),
		apply:              bigint.SetThresholds,
		currentMul:         mulLimbs,
		currentDiv:         divLimbs,
		originalMul:        mulLimbs,
		originalDiv:        divLimbs,
		adjustmentInterval: DynamicAdjustmentInterval,
	}
}

// NewDynamicThresholdManagerFromConfig creates a manager from configuration,
// or returns nil when adjustment is disabled.
func NewDynamicThresholdManagerFromConfig(cfg Config) *DynamicThresholdManager {
	if !cfg.Enabled {
		return nil
	}
	m := NewDynamicThresholdManager(cfg.InitialMul, cfg.InitialDiv)
	if cfg.AdjustmentInterval > 0 {
		m.adjustmentInterval = cfg.AdjustmentInterval
	}
	return m
}

// SetLogger configures the logger for threshold adjustment events.
func (m *DynamicThresholdManager) SetLogger(l zerolog.Logger) {
	m.logger = l
}

// SetApplier replaces the function that installs adjusted thresholds.
func (m *DynamicThresholdManager) SetApplier(apply func(bigint.Thresholds)) {
	m.apply = apply
}

// ─────────────────────────────────────────────────────────────────────────────
// Metric Recording
// ─────────────────────────────────────────────────────────────────────────────

// OnOperation records successful products and quotients and applies any
// resulting adjustment.
func (m *DynamicThresholdManager) OnOperation(op eval.Operation) {
	if op.Err != nil || op.LhsLimbs == 0 || op.RhsLimbs == 0 {
		return
	}
	metric := OpMetric{
		Work:     float64(op.LhsLimbs) * float64(op.RhsLimbs),
		Duration: op.Duration,
	}
	switch op.Op {
	case "*":
		switch op.Algorithm {
		case "brute":
		case "fft", "ntt":
			metric.Transform = true
		default:
			return
		}
	case "/", "%":
		metric.Div = true
		switch op.Algorithm {
		case "brute":
		case "newton":
			metric.Transform = true
		default:
			return
		}
	default:
		return
	}
	m.Record(metric)
	if mul, div, ok := m.ShouldAdjust(); ok && m.apply != nil {
		m.apply(bigint.Thresholds{BruteForceMulLimbs: mul, BruteForceDivLimbs: div})
	}
}

// Record adds a metric to the window.
func (m *DynamicThresholdManager) Record(metric OpMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics[m.metricsHead] = metric
	m.metricsHead = (m.metricsHead + 1) % MaxMetricsHistory
	m.metricsCount++
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Access
// ─────────────────────────────────────────────────────────────────────────────

// GetThresholds returns the current multiplication and division limits.
func (m *DynamicThresholdManager) GetThresholds() (mul, div int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentMul, m.currentDiv
}

// ─────────────────────────────────────────────────────────────────────────────
// Adjustment Logic
// ─────────────────────────────────────────────────────────────────────────────

// ShouldAdjust checks whether the thresholds should move. It returns the
// thresholds in effect afterwards and whether either changed.
func (m *DynamicThresholdManager) ShouldAdjust() (mul, div int, adjusted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.metricsCount == 0 || m.metricsCount%m.adjustmentInterval != 0 ||
		m.metricsCount < MinMetricsForAdjustment {
		return m.currentMul, m.currentDiv, false
	}

	metrics := m.activeMetrics()
	newMul := analyze(metrics, false, m.currentMul, m.originalMul)
	newDiv := analyze(metrics, true, m.currentDiv, m.originalDiv)

	mulChanged := significantChange(m.currentMul, newMul)
	divChanged := significantChange(m.currentDiv, newDiv)
	if !mulChanged && !divChanged {
		return m.currentMul, m.currentDiv, false
	}

	oldMul, oldDiv := m.currentMul, m.currentDiv
	if mulChanged {
		m.currentMul = newMul
	}
	if divChanged {
		m.currentDiv = newDiv
	}
	m.adjustments++
	m.lastAdjustment = time.Now()
	m.logger.Debug().
		Int("operations", m.metricsCount).
		Int("mul_old", oldMul).
		Int("mul_new", m.currentMul).
		Int("div_old", oldDiv).
		Int("div_new", m.currentDiv).
		Msg("thresholds adjusted")
	return m.currentMul, m.currentDiv, true
}

// activeMetrics returns the valid part of the ring buffer. Order does not
// matter for the averages.
func (m *DynamicThresholdManager) activeMetrics() []OpMetric {
	n := min(m.metricsCount, MaxMetricsHistory)
	out := make([]OpMetric, n)
	copy(out, m.metrics[:n])
	return out
}

// analyze compares the per-work cost of the transform path with the
// brute-force path for one kind of operation. A transform that is clearly
// cheaper lowers the threshold; a clearly dearer one raises it, up to twice
// the original.
func analyze(metrics []OpMetric, div bool, current, original int) int {
	var fast, slow []OpMetric
	for _, metric := range metrics {
		if metric.Div != div {
			continue
		}
		if metric.Transform {
			fast = append(fast, metric)
		} else {
			slow = append(slow, metric)
		}
	}
	if len(fast) == 0 || len(slow) == 0 {
		return current
	}
	ratio := speedupRatio(avgCostPerWork(fast), avgCostPerWork(slow))
	switch {
	case ratio == 0:
		return current
	case ratio > TransformSpeedupThreshold:
		return max(current*8/10, MinLimbs)
	case ratio < 1/TransformSpeedupThreshold:
		return min(current*12/10, original*2)
	}
	return current
}

// speedupRatio returns baseline over optimized, or 0 if either is non-positive.
func speedupRatio(avgOptimized, avgBaseline float64) float64 {
	if avgOptimized <= 0 || avgBaseline <= 0 {
		return 0
	}
	return avgBaseline / avgOptimized
}

func avgCostPerWork(metrics []OpMetric) float64 {
	var total time.Duration
	var work float64
	for _, metric := range metrics {
		total += metric.Duration
		work += metric.Work
	}
	if work == 0 {
		return 0
	}
	return float64(total.Nanoseconds()) / work
}

// significantChange checks if a threshold change is significant enough to apply.
func significantChange(oldVal, newVal int) bool {
	if oldVal == 0 {
		return newVal != 0
	}
	change := float64(newVal-oldVal) / float64(oldVal)
	if change < 0 {
		change = -change
	}
	return change > HysteresisMargin
}

// ─────────────────────────────────────────────────────────────────────────────
// Statistics and Reporting
// ─────────────────────────────────────────────────────────────────────────────

// GetStats returns current statistics about the manager.
func (m *DynamicThresholdManager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		CurrentMul:          m.currentMul,
		CurrentDiv:          m.currentDiv,
		OriginalMul:         m.originalMul,
		OriginalDiv:         m.originalDiv,
		MetricsCollected:    min(m.metricsCount, MaxMetricsHistory),
		OperationsProcessed: m.metricsCount,
		Adjustments:         m.adjustments,
	}
}

// Reset clears all collected metrics and restores the original thresholds.
func (m *DynamicThresholdManager) Reset() {
	m.mu.Lock()
	m.currentMul, m.currentDiv = m.originalMul, m.originalDiv
	m.metricsCount, m.metricsHead, m.adjustments = 0, 0, 0
	m.mu.Unlock()
	if m.apply != nil {
		m.apply(bigint.Thresholds{BruteForceMulLimbs: m.originalMul, BruteForceDivLimbs: m.originalDiv})
	}
}
