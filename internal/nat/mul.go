package nat

import (
	"github.com/darksharpness/int2048/internal/fft"
)

// Multiplication algorithm names, as reported by MulAlgorithm.
const (
	AlgZero  = "zero"
	AlgBrute = "brute"
	AlgFFT   = "fft"
	AlgNTT   = "ntt"
)

// UseBruteForce reports whether x·y is computed by schoolbook
// multiplication: the larger operand is shorter than the brute-force
// threshold, or one operand is a single limb.
func UseBruteForce(x, y Nat) bool {
	return useBruteForce(len(x), len(y))
}

func useBruteForce(n, m int) bool {
	return max(n, m) < int(bruteMulLimbs.Load()) || min(n, m) == 1
}

// MulAlgorithm returns the algorithm Mul uses for x·y.
func MulAlgorithm(x, y Nat) string {
	return MulAlgorithmLen(len(x), len(y))
}

// MulAlgorithmLen returns the algorithm Mul uses for operands of n and m
// limbs.
func MulAlgorithmLen(n, m int) string {
	switch {
	case n == 0 || m == 0:
		return AlgZero
	case useBruteForce(n, m):
		return AlgBrute
	case fft.FloatLength(n, m) <= fft.MaxFloatLength:
		return AlgFFT
	}
	return AlgNTT
}

// Mul stores x·y in z.
func (z Nat) Mul(x, y Nat) Nat {
	if len(x) == 0 || len(y) == 0 {
		return z[:0]
	}
	if alias(z, x) || alias(z, y) {
		z = nil
	}
	z = z.make(len(x) + len(y))
	mulInto(z, x, y)
	return z.norm()
}

// MulWith computes x·y with the named algorithm regardless of the
// thresholds. Calibration and cross-checks use it.
func MulWith(alg string, x, y Nat) Nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(Nat, len(x)+len(y))
	switch alg {
	case AlgBrute:
		mulBrute(z, x, y)
	case AlgFFT:
		mulFFT(z, x, y)
	case AlgNTT:
		mulNTT(z, x, y)
	default:
		mulInto(z, x, y)
	}
	return z.norm()
}

// mulInto stores x·y in z, len(z) == len(x)+len(y). z must not alias x or y.
func mulInto(z, x, y Nat) {
	switch MulAlgorithm(x, y) {
	case AlgBrute:
		mulBrute(z, x, y)
	case AlgFFT:
		mulFFT(z, x, y)
	default:
		mulNTT(z, x, y)
	}
}

// mulBrute is schoolbook multiplication. Every row accumulator stays below
// Radix², so it never leaves a uint64.
func mulBrute(z, x, y Nat) {
	if len(x) < len(y) {
		x, y = y, x
	}
	clear(z)
	for j, yj := range y {
		if yj == 0 {
			continue
		}
		var c Word
		row := z[j:]
		for i, xi := range x {
			t := row[i] + xi*yj + c
			row[i] = t % Radix
			c = t / Radix
		}
		row[len(x)] = c
	}
}

// mulFFT multiplies through the complex transform, falling back to the
// modular one if the decoded coefficients are not trustworthy.
func mulFFT(z, x, y Nat) {
	if !fft.Convolve(z, x, y, Radix, HalfRadix) {
		mulNTT(z, x, y)
	}
}

// nttLimit is the longest modular transform mulNTT runs directly; nttChunk
// is the operand slice length that keeps every chunk product within it.
var (
	nttLimit = fft.MaxNTTLength
	nttChunk = fft.MaxNTTLength / 4
)

// mulNTT multiplies through the three-prime transform. Operands beyond its
// length limit are cut into chunks whose products are accumulated.
func mulNTT(z, x, y Nat) {
	if fft.NTTLength(len(x), len(y)) <= nttLimit {
		fft.ConvolveNTT(z, x, y, Radix)
		return
	}

	clear(z)
	t := make(Nat, 2*nttChunk)
	for i := 0; i < len(x); i += nttChunk {
		xi := x[i:min(i+nttChunk, len(x))]
		for j := 0; j < len(y); j += nttChunk {
			yj := y[j:min(j+nttChunk, len(y))]
			p := t[:len(xi)+len(yj)]
			mulInto(p, xi, yj)
			acc := z[i+j:]
			add(acc, acc, p)
		}
	}
}
