// Package fft implements the convolution engines behind large decimal
// multiplication: an iterative radix-2 complex FFT over half-limbs, and a
// three-prime number-theoretic transform for lengths beyond the floating
// point precision ceiling.
package fft

import (
	"math"
	"math/bits"
)

const (
	// MaxFloatLength is the longest complex transform Convolve accepts. With
	// half-limbs below 10^4 the largest coefficient is about N·10^8, which
	// keeps the accumulated rounding error well under a quarter at this
	// length.
	MaxFloatLength = 1 << 22

	// maxRoundingError is the largest distance from an integer a decoded
	// coefficient may show before the result is rejected.
	maxRoundingError = 0.25
)

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// FloatLength returns the complex transform length used to multiply
// operands of n and m words.
func FloatLength(n, m int) int {
	return NextPowerOfTwo(2 * (n + m))
}

// ScaleExp returns v·2^-k by subtracting k from the binary exponent of v.
// v must be zero or large enough that the result stays a normal number.
func ScaleExp(v float64, k int) float64 {
	if v == 0 {
		return 0
	}
	return math.Float64frombits(math.Float64bits(v) - uint64(k)<<52)
}

// bitReverse permutes a into bit-reversed index order. len(a) is a power of two.
func bitReverse[T any](a []T) {
	n := len(a)
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// Forward transforms a in place. len(a) must be a power of two.
func Forward(a []complex128) { transform(a, false) }

// Inverse applies the inverse transform to a in place without the 1/N
// factor; callers pre-scale an operand with ScaleExp instead.
func Inverse(a []complex128) { transform(a, true) }

func transform(a []complex128, inverse bool) {
	n := len(a)
	if n <= 1 {
		return
	}
	bitReverse(a)
	roots := Roots().For(n)
	order := 2 * len(roots)
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := order / size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := roots[k*step]
				if inverse {
					w = complex(real(w), -imag(w))
				}
				u := a[start+k]
				v := a[start+k+half] * w
				a[start+k] = u + v
				a[start+k+half] = u - v
			}
		}
	}
}

// Convolve stores the product of x and y, little-endian sequences of words
// below radix, into z, with len(z) == len(x)+len(y). Each word is split into
// two digits below half (half² == radix) before transforming.
//
// It reports false when a decoded coefficient strayed too far from an
// integer; z is then unspecified and the caller must use an exact method.
func Convolve(z, x, y []uint64, radix, half uint64) bool {
	n := FloatLength(len(x), len(y))
	logN := bits.TrailingZeros(uint(n))

	a := complexPool.acquire(n)
	defer complexPool.release(a)
	b := complexPool.acquire(n)
	defer complexPool.release(b)

	for i, v := range x {
		a[2*i] = complex(ScaleExp(float64(v%half), logN), 0)
		a[2*i+1] = complex(ScaleExp(float64(v/half), logN), 0)
	}
	for i, v := range y {
		b[2*i] = complex(float64(v%half), 0)
		b[2*i+1] = complex(float64(v/half), 0)
	}

	Forward(a)
	Forward(b)
	for i := range a {
		a[i] *= b[i]
	}
	Inverse(a)

	var carry uint64
	for i := range z {
		lo, ok := roundCoefficient(real(a[2*i]))
		if !ok {
			return false
		}
		hi, ok := roundCoefficient(real(a[2*i+1]))
		if !ok {
			return false
		}
		carry += hi*half + lo
		z[i] = carry % radix
		carry /= radix
	}
	return carry == 0
}

// roundCoefficient rounds a decoded coefficient to the nearest integer.
func roundCoefficient(v float64) (uint64, bool) {
	r := math.Round(v)
	if !(math.Abs(v-r) <= maxRoundingError) || r < 0 {
		return 0, false
	}
	return uint64(r), true
}
