package nat

import (
	"math/bits"
)

// Nat is an unsigned magnitude in radix 10^8, least significant limb first.
type Nat []Word

// make returns z resized to n limbs, reusing the backing array when it is
// large enough. The contents are unspecified.
func (z Nat) make(n int) Nat {
	if n <= cap(z) {
		return z[:n]
	}
	if n == 1 {
		return make(Nat, 1)
	}
	// Spare capacity absorbs the carry limb of a following add or increment.
	const e = 4
	return make(Nat, n, n+e)
}

// makeZero is make followed by a zero fill.
func (z Nat) makeZero(n int) Nat {
	z = z.make(n)
	clear(z)
	return z
}

// norm drops high zero limbs.
func (z Nat) norm() Nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

// alias reports whether x and y share the same backing array.
func alias(x, y Nat) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

// Set stores a copy of x in z.
func (z Nat) Set(x Nat) Nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

// SetUint64 stores x in z.
func (z Nat) SetUint64(x uint64) Nat {
	if x == 0 {
		return z[:0]
	}
	n := 0
	for t := x; t > 0; t /= Radix {
		n++
	}
	z = z.make(n)
	for i := range z {
		z[i] = x % Radix
		x /= Radix
	}
	return z
}

// Low64 returns the value of the three low limbs modulo 2^64. Higher limbs
// are ignored, so the result wraps for large magnitudes.
func (x Nat) Low64() uint64 {
	var v uint64
	for i := min(len(x), 3) - 1; i >= 0; i-- {
		v = v*Radix + x[i]
	}
	return v
}

// Uint64 returns x as a uint64 and whether it fits without loss.
func (x Nat) Uint64() (uint64, bool) {
	var v uint64
	for i := len(x) - 1; i >= 0; i-- {
		hi, lo := bits.Mul64(v, Radix)
		if hi != 0 {
			return 0, false
		}
		var c uint64
		v, c = bits.Add64(lo, x[i], 0)
		if c != 0 {
			return 0, false
		}
	}
	return v, true
}

// IsZero reports whether x is the canonical zero.
func (x Nat) IsZero() bool { return len(x) == 0 }

// Cmp compares two normalized magnitudes and returns -1, 0 or +1.
func (x Nat) Cmp(y Nat) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	_, ord := cmpEqualLen(x, y)
	return ord
}

// Digits returns the number of decimal digits of x, 1 for zero.
func (x Nat) Digits() int {
	if len(x) == 0 {
		return 1
	}
	top := x[len(x)-1]
	n := 1
	for n < RadixDigits && top >= pow10[n] {
		n++
	}
	return (len(x)-1)*RadixDigits + n
}

// ShiftLeft returns x·Radix^s in z.
func (z Nat) ShiftLeft(x Nat, s int) Nat {
	return shlLimbs(z, x, s)
}

// ShiftRight returns ⌊x / Radix^s⌋ in z.
func (z Nat) ShiftRight(x Nat, s int) Nat {
	return shrLimbs(z, x, s)
}
