// Package memory estimates the footprint of kernel operations, enforces the
// --memory-limit budget and controls the garbage collector around very large
// operations.
package memory

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/fft"
	"github.com/darksharpness/int2048/internal/nat"
)

const limbBytes = 8

// EstimateMulBytes returns the peak bytes needed to multiply operands of n
// and m limbs: the product plus the transform buffers of the algorithm the
// kernel will pick.
func EstimateMulBytes(n, m int) uint64 {
	if n <= 0 || m <= 0 {
		return 0
	}
	result := uint64(n+m) * limbBytes
	switch nat.MulAlgorithmLen(n, m) {
	case nat.AlgFFT:
		// Two complex128 sample arrays.
		return result + 2*uint64(fft.FloatLength(n, m))*16
	case nat.AlgNTT:
		// Three residue arrays, the second operand and the twiddles.
		return result + 5*uint64(min(fft.NTTLength(n, m), fft.MaxNTTLength))*limbBytes
	}
	return result
}

// EstimateDivBytes returns the peak bytes needed to divide an n-limb
// dividend by an m-limb divisor. Newton division multiplies the dividend by
// a reciprocal of up to 2m limbs and keeps the reciprocal alive meanwhile.
func EstimateDivBytes(n, m int) uint64 {
	if n <= 0 || m <= 0 || n < m {
		return uint64(max(n, 0)) * limbBytes
	}
	quotient := uint64(n-m+2) * limbBytes
	remainder := uint64(m) * limbBytes
	recip := uint64(2*m+1) * limbBytes
	return quotient + remainder + recip + EstimateMulBytes(n, 2*m+1)
}

// EstimateLimbsBytes returns the bytes held by a result of n limbs, the
// footprint of every linear operation (sums, negation, limb shifts).
func EstimateLimbsBytes(n int) uint64 {
	return uint64(max(n, 0)) * limbBytes
}

// EstimateParseBytes returns the bytes needed to hold an integer of the
// given number of decimal digits.
func EstimateParseBytes(digits int) uint64 {
	return uint64((digits+nat.RadixDigits-1)/nat.RadixDigits) * limbBytes
}

var units = []struct {
	suffix string
	scale  uint64
}{
	{"KIB", 1 << 10}, {"MIB", 1 << 20}, {"GIB", 1 << 30}, {"TIB", 1 << 40},
	{"KB", 1 << 10}, {"MB", 1 << 20}, {"GB", 1 << 30}, {"TB", 1 << 40},
	{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30}, {"T", 1 << 40},
	{"B", 1},
}

// ParseMemoryLimit parses a size such as "512M", "8GiB" or "1048576".
// Units are binary. The empty string means no limit and yields 0.
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	scale := uint64(1)
	for _, u := range units {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			s, scale = strings.TrimSpace(rest), u.scale
			break
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse memory limit: %w", err)
	}
	if v == 0 {
		return 0, fmt.Errorf("memory limit must be positive")
	}
	if v > ^uint64(0)/scale {
		return 0, fmt.Errorf("memory limit overflows: %s", s)
	}
	return v * scale, nil
}

// FormatBytes renders b with a binary unit, e.g. "1.50 GiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTP"[exp])
}

// Budget checks operation estimates against a fixed limit. The zero value
// has no limit.
type Budget struct {
	Limit uint64
}

// Check returns an apperrors.MemoryError when need exceeds the limit.
func (b Budget) Check(need uint64) error {
	if b.Limit == 0 || need <= b.Limit {
		return nil
	}
	return apperrors.MemoryError{Requested: need, Available: b.Limit, Limit: b.Limit}
}
