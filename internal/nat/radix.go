// Package nat implements unsigned decimal-radix magnitudes: limb arithmetic,
// multiplication (schoolbook, floating FFT and NTT convolution), division
// (long division and Newton reciprocal) and decimal conversion.
//
// A magnitude is a little-endian slice of limbs, each in [0, Radix). The
// canonical form has no high zero limb, so zero is the empty slice.
package nat

// Word is a single limb. Only the low 27 bits are ever used, the rest of the
// word is headroom for products and carries.
type Word = uint64

const (
	// Radix is the limb base.
	Radix Word = 100_000_000
	// RadixDigits is the number of decimal digits held by one limb.
	RadixDigits = 8
	// HalfRadix is the base of the half-limbs fed to the floating transform.
	HalfRadix Word = 10_000
)

// pow10 holds the powers of ten below Radix.
var pow10 = [RadixDigits]Word{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000}
