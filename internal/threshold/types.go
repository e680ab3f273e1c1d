package threshold

import "time"

// OpMetric records timing data for one multiplication or division.
type OpMetric struct {
	// Div is set for quotients, unset for products.
	Div bool
	// Work is the product of the operand limb counts.
	Work float64
	// Duration is how long the kernel call took.
	Duration time.Duration
	// Transform is set when the operation ran the transform path (FFT/NTT
	// for products, Newton for quotients).
	Transform bool
}

// Stats reports the manager's activity.
type Stats struct {
	// CurrentMul and CurrentDiv are the thresholds in effect.
	CurrentMul int
	CurrentDiv int
	// OriginalMul and OriginalDiv are the thresholds the manager started with.
	OriginalMul int
	OriginalDiv int
	// MetricsCollected is the number of metrics in the window.
	MetricsCollected int
	// OperationsProcessed is the total number of metrics ever recorded.
	OperationsProcessed int
	// Adjustments counts the threshold changes applied.
	Adjustments int
}

// Config holds configuration for dynamic threshold adjustment.
type Config struct {
	// InitialMul and InitialDiv are the starting brute-force limits in limbs.
	InitialMul int
	InitialDiv int
	// AdjustmentInterval is how often to check for adjustments, in recorded
	// operations.
	AdjustmentInterval int
	// Enabled controls whether dynamic adjustment is active.
	Enabled bool
}
