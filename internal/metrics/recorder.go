// Package metrics records calculator activity as Prometheus metrics and
// dumps them in the text exposition format for --metrics.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/darksharpness/int2048/internal/eval"
)

const namespace = "int2048"

// OpRecorder counts and times evaluated operations. It implements
// eval.Observer. Each recorder owns its registry, so recorders never share
// series.
type OpRecorder struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	limbs    prometheus.Histogram
}

// NewOpRecorder creates a recorder with the operation metrics and the
// process memory gauges registered.
func NewOpRecorder() *OpRecorder {
	r := &OpRecorder{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Arithmetic operations evaluated, by operator and kernel algorithm.",
		}, []string{"op", "algorithm"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Operations rejected before running (division by zero, memory limit, shift range).",
		}, []string{"op"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of kernel calls.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		limbs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operand_limbs",
			Help:      "Size of the larger operand in radix-10^8 limbs.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
	r.registry.MustRegister(r.ops, r.failures, r.duration, r.limbs)
	NewMemoryCollector().register(r.registry)
	return r
}

// OnOperation records op.
func (r *OpRecorder) OnOperation(op eval.Operation) {
	if op.Err != nil {
		r.failures.WithLabelValues(op.Op).Inc()
		return
	}
	r.ops.WithLabelValues(op.Op, op.Algorithm).Inc()
	r.duration.WithLabelValues(op.Op).Observe(op.Duration.Seconds())
	r.limbs.Observe(float64(max(op.LhsLimbs, op.RhsLimbs)))
}

// Registry returns the registry holding the recorder's metrics.
func (r *OpRecorder) Registry() *prometheus.Registry { return r.registry }

// WriteText writes every metric in the Prometheus text format.
func (r *OpRecorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
