// Package bigint provides arbitrary-precision signed integers stored in
// decimal radix, so parsing and printing are linear in the number of digits.
//
// The API follows math/big: methods take their operands as arguments, store
// the result in the receiver and return it, so expressions chain and
// receivers are reused:
//
//	z := new(bigint.Int)
//	z.Mul(x, y).Add(z, w)
//
// Multiplication switches from schoolbook to FFT convolution (and to a
// three-prime NTT for very long operands); division of long operands goes
// through a Newton reciprocal. Division truncates toward zero and the
// remainder takes the sign of the dividend.
package bigint

import (
	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/nat"
)

// Int is a signed integer of unbounded magnitude. The zero value is 0.
// Values must not be copied by assignment when one of the copies is later
// used as a receiver; use Set.
type Int struct {
	neg bool    // sign, never set for zero
	abs nat.Nat // magnitude
}

// Thresholds are the algorithm crossover points of the kernel.
type Thresholds = nat.Thresholds

// SetThresholds installs new crossover points for every Int operation.
// Non-positive fields keep their current value.
func SetThresholds(t Thresholds) { nat.SetThresholds(t) }

// CurrentThresholds returns the crossover points in effect.
func CurrentThresholds() Thresholds { return nat.CurrentThresholds() }

// NewInt allocates and returns a new Int set to x.
func NewInt(x int64) *Int {
	return new(Int).SetInt64(x)
}

// NewUint64 allocates and returns a new Int set to x.
func NewUint64(x uint64) *Int {
	return new(Int).SetUint64(x)
}

// SetInt64 sets z to x and returns z.
func (z *Int) SetInt64(x int64) *Int {
	neg := false
	u := uint64(x)
	if x < 0 {
		neg = true
		u = -u
	}
	z.abs = z.abs.SetUint64(u)
	z.neg = neg
	return z
}

// SetUint64 sets z to x and returns z.
func (z *Int) SetUint64(x uint64) *Int {
	z.abs = z.abs.SetUint64(x)
	z.neg = false
	return z
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	if z != x {
		z.abs = z.abs.Set(x.abs)
		z.neg = x.neg
	}
	return z
}

// Sign returns -1, 0 or +1.
func (x *Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x is 0.
func (x *Int) IsZero() bool { return len(x.abs) == 0 }

// Limbs returns the number of radix-10^8 limbs of |x|, 0 for zero.
func (x *Int) Limbs() int { return len(x.abs) }

// Digits returns the number of decimal digits of |x|, 1 for zero.
func (x *Int) Digits() int { return x.abs.Digits() }

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg == y.neg:
		r := x.abs.Cmp(y.abs)
		if x.neg {
			r = -r
		}
		return r
	case x.neg:
		return -1
	}
	return 1
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int { return x.abs.Cmp(y.abs) }

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.Set(x)
	z.neg = len(z.abs) > 0 && !z.neg
	return z
}

// Abs sets z to |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.Set(x)
	z.neg = false
	return z
}

// add sets z to (-1)^xneg·|x| + (-1)^yneg·|y|.
func (z *Int) add(x nat.Nat, xneg bool, y nat.Nat, yneg bool) *Int {
	neg := xneg
	if xneg == yneg {
		z.abs = z.abs.Add(x, y)
	} else if x.Cmp(y) >= 0 {
		z.abs = z.abs.Sub(x, y)
	} else {
		neg = !neg
		z.abs = z.abs.Sub(y, x)
	}
	z.neg = len(z.abs) > 0 && neg
	return z
}

// Add sets z to x+y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	return z.add(x.abs, x.neg, y.abs, y.neg)
}

// Sub sets z to x-y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	return z.add(x.abs, x.neg, y.abs, !y.neg)
}

// Inc sets z to x+1 and returns z.
func (z *Int) Inc(x *Int) *Int {
	if x.neg {
		z.abs = z.abs.Dec(x.abs)
		z.neg = len(z.abs) > 0
		return z
	}
	z.abs = z.abs.Inc(x.abs)
	z.neg = false
	return z
}

// Dec sets z to x-1 and returns z.
func (z *Int) Dec(x *Int) *Int {
	if x.neg || len(x.abs) == 0 {
		z.abs = z.abs.Inc(x.abs)
		z.neg = true
		return z
	}
	z.abs = z.abs.Dec(x.abs)
	z.neg = false
	return z
}

// Mul sets z to x·y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	neg := x.neg != y.neg
	z.abs = z.abs.Mul(x.abs, y.abs)
	z.neg = len(z.abs) > 0 && neg
	return z
}

// QuoRem sets z to the quotient x/y and r to the remainder x%y and returns
// (z, r). Division truncates toward zero; the remainder is zero or has the
// sign of x. It panics with apperrors.ErrDivisionByZero if y is 0.
func (z *Int) QuoRem(x, y, r *Int) (*Int, *Int) {
	if len(y.abs) == 0 {
		panic(apperrors.ErrDivisionByZero)
	}
	qneg, rneg := x.neg != y.neg, x.neg
	q, m := nat.DivMod(x.abs, y.abs)
	z.abs, z.neg = q, len(q) > 0 && qneg
	r.abs, r.neg = m, len(m) > 0 && rneg
	return z, r
}

// Quo sets z to the truncated quotient x/y and returns z. It panics with
// apperrors.ErrDivisionByZero if y is 0.
func (z *Int) Quo(x, y *Int) *Int {
	z.QuoRem(x, y, new(Int))
	return z
}

// Rem sets z to the remainder x%y, which is zero or has the sign of x, and
// returns z. It panics with apperrors.ErrDivisionByZero if y is 0.
func (z *Int) Rem(x, y *Int) *Int {
	new(Int).QuoRem(x, y, z)
	return z
}

// Divide returns the truncated quotient and the remainder of x/y, or
// apperrors.ErrDivisionByZero if y is 0.
func Divide(x, y *Int) (q, r *Int, err error) {
	if y.IsZero() {
		return nil, nil, apperrors.ErrDivisionByZero
	}
	q, r = new(Int).QuoRem(x, y, new(Int))
	return q, r, nil
}

// ShiftLimbs sets z to x·10^(8k) for k > 0, or to x/10^(8|k|) truncated
// toward zero for k < 0, and returns z.
func (z *Int) ShiftLimbs(x *Int, k int) *Int {
	neg := x.neg
	if k >= 0 {
		z.abs = z.abs.ShiftLeft(x.abs, k)
	} else {
		z.abs = z.abs.ShiftRight(x.abs, -k)
	}
	z.neg = len(z.abs) > 0 && neg
	return z
}

// MulStrategy names the algorithm x·y runs with: "zero", "brute", "fft" or
// "ntt".
func MulStrategy(x, y *Int) string { return nat.MulAlgorithm(x.abs, y.abs) }

// DivStrategy names the algorithm x/y runs with: "small", "word", "brute"
// or "newton". y must be nonzero.
func DivStrategy(x, y *Int) string { return nat.DivAlgorithm(x.abs, y.abs) }
