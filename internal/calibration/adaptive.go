package calibration

import (
	"math"

	"github.com/darksharpness/int2048/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Candidate operand sizes
// ─────────────────────────────────────────────────────────────────────────────

// GenerateCandidateSizes returns the operand sizes, in limbs, timed by a
// full calibration. They bracket the hardware estimate from a quarter to
// four times its value, so machines far from the default are still
// covered.
func GenerateCandidateSizes() []int {
	return candidateSizes(EstimateOptimalBruteThreshold(), 12)
}

// GenerateQuickCandidateSizes returns a smaller set for a quick run.
func GenerateQuickCandidateSizes() []int {
	return candidateSizes(EstimateOptimalBruteThreshold(), 6)
}

// candidateSizes spreads count sizes geometrically over [estimate/4,
// 4·estimate], never below 4 limbs and strictly increasing.
func candidateSizes(estimate, count int) []int {
	lo := max(estimate/4, 4)
	hi := max(estimate*4, lo+count)
	sizes := make([]int, 0, count)
	ratio := float64(hi) / float64(lo)
	for i := range count {
		f := float64(lo)
		if count > 1 {
			f *= math.Pow(ratio, float64(i)/float64(count-1))
		}
		n := int(f + 0.5)
		if len(sizes) > 0 && n <= sizes[len(sizes)-1] {
			n = sizes[len(sizes)-1] + 1
		}
		sizes = append(sizes, n)
	}
	return sizes
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// Delegates to config.EstimateOptimal*, where the canonical versions live.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalBruteThreshold delegates to config.EstimateOptimalBruteThreshold.
func EstimateOptimalBruteThreshold() int { return config.EstimateOptimalBruteThreshold() }

// EstimateOptimalDivThreshold delegates to config.EstimateOptimalDivThreshold.
func EstimateOptimalDivThreshold() int { return config.EstimateOptimalDivThreshold() }
