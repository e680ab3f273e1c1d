package nat

import "sync/atomic"

const (
	// DefaultBruteForceMulLimbs is the larger-operand limb count below which
	// multiplication stays quadratic.
	DefaultBruteForceMulLimbs = 48
	// DefaultBruteForceDivLimbs is the divisor length (and size gap) below
	// which division uses schoolbook long division.
	DefaultBruteForceDivLimbs = 64

	minThreshold = 2
)

// Thresholds holds the algorithm crossover points of the kernel.
type Thresholds struct {
	BruteForceMulLimbs int `json:"brute_force_mul_limbs"`
	BruteForceDivLimbs int `json:"brute_force_div_limbs"`
}

// DefaultThresholds returns the built-in crossover points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BruteForceMulLimbs: DefaultBruteForceMulLimbs,
		BruteForceDivLimbs: DefaultBruteForceDivLimbs,
	}
}

var (
	bruteMulLimbs atomic.Int64
	bruteDivLimbs atomic.Int64
)

func init() {
	SetThresholds(DefaultThresholds())
}

// SetThresholds installs new crossover points. Non-positive fields keep their
// current value; values below 2 are raised to 2. Safe to call between
// operations from any goroutine.
func SetThresholds(t Thresholds) {
	if t.BruteForceMulLimbs > 0 {
		bruteMulLimbs.Store(int64(max(t.BruteForceMulLimbs, minThreshold)))
	}
	if t.BruteForceDivLimbs > 0 {
		bruteDivLimbs.Store(int64(max(t.BruteForceDivLimbs, minThreshold)))
	}
}

// CurrentThresholds returns the crossover points in effect.
func CurrentThresholds() Thresholds {
	return Thresholds{
		BruteForceMulLimbs: int(bruteMulLimbs.Load()),
		BruteForceDivLimbs: int(bruteDivLimbs.Load()),
	}
}
