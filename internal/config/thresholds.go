package config

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/darksharpness/int2048/internal/nat"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--brute-threshold, --div-threshold)
//   2. Environment variables (INT2048_BRUTE_THRESHOLD, INT2048_DIV_THRESHOLD)
//   3. Cached calibration profile (~/.int2048_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in internal/nat

// ApplyAdaptiveThresholds fills the thresholds left at zero with estimates
// derived from the CPU. User-specified values are preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.BruteThreshold == 0 {
		cfg.BruteThreshold = EstimateOptimalBruteThreshold()
	}
	if cfg.DivThreshold == 0 {
		cfg.DivThreshold = EstimateOptimalDivThreshold()
	}
	return cfg
}

// Thresholds converts the configured crossovers into kernel thresholds.
// Zero fields keep the kernel's current value.
func (c AppConfig) Thresholds() nat.Thresholds {
	return nat.Thresholds{
		BruteForceMulLimbs: c.BruteThreshold,
		BruteForceDivLimbs: c.DivThreshold,
	}
}

// EstimateOptimalBruteThreshold provides a heuristic estimate of the
// multiplication crossover without running benchmarks. Fused multiply-add
// and wide vector units make the transform cheaper relative to the
// schoolbook loop; 32-bit targets pay for every 64-bit limb product.
func EstimateOptimalBruteThreshold() int {
	base := nat.DefaultThresholds().BruteForceMulLimbs
	wordSize := 32 << (^uint(0) >> 63)

	switch {
	case wordSize == 32:
		return base * 2
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		return base * 3 / 4
	case cpu.ARM64.HasASIMD:
		return base * 7 / 8
	case runtime.GOARCH == "wasm":
		return base * 2
	}
	return base
}

// EstimateOptimalDivThreshold provides a heuristic estimate of the divisor
// size at which the Newton divider overtakes long division. The Newton
// path is dominated by transform multiplications, so it tracks the
// multiplication crossover.
func EstimateOptimalDivThreshold() int {
	base := nat.DefaultThresholds()
	return max(2, EstimateOptimalBruteThreshold()*base.BruteForceDivLimbs/base.BruteForceMulLimbs)
}
