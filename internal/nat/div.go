package nat

import (
	"math/bits"
)

// Division algorithm names, as reported by DivAlgorithm.
const (
	DivAlgSmall  = "small"
	DivAlgWord   = "word"
	DivAlgBrute  = "brute"
	DivAlgNewton = "newton"
)

const (
	// maxNewtonCorrections bounds every correction loop of the Newton path.
	// The estimates are off by at most one, so hitting the bound means the
	// kernel is broken.
	maxNewtonCorrections = 8

	// newtonBaseLimbs is the divisor length at which the reciprocal
	// recursion switches to long division.
	newtonBaseLimbs = 16
)

// useBruteDivision reports whether x/y is computed by long division.
func useBruteDivision(x, y Nat) bool {
	t := int(bruteDivLimbs.Load())
	return len(y) <= t || len(x)-len(y) < t
}

// DivAlgorithm returns the algorithm DivMod uses for x/y. y must be nonzero.
func DivAlgorithm(x, y Nat) string {
	switch {
	case x.Cmp(y) < 0:
		return DivAlgSmall
	case len(y) == 1:
		return DivAlgWord
	case useBruteDivision(x, y):
		return DivAlgBrute
	}
	return DivAlgNewton
}

// DivMod returns ⌊x/y⌋ and x - ⌊x/y⌋·y in freshly allocated magnitudes.
// y must be nonzero.
func DivMod(x, y Nat) (q, r Nat) {
	if len(y) == 0 {
		panic("nat: division by zero")
	}
	switch DivAlgorithm(x, y) {
	case DivAlgSmall:
		return nil, Nat(nil).Set(x)
	case DivAlgWord:
		return divWord(x, y[0])
	case DivAlgBrute:
		return divBrute(x, y)
	}
	return divNewton(x, y)
}

// divWord divides by a single limb d.
func divWord(x Nat, d Word) (Nat, Nat) {
	q := make(Nat, len(x))
	var r Word
	for i := len(x) - 1; i >= 0; i-- {
		cur := r*Radix + x[i]
		q[i] = cur / d
		r = cur % d
	}
	return q.norm(), Nat(nil).SetUint64(r)
}

// divBrute is long division producing one quotient limb per step. Each limb
// is binary searched in a bracket derived from the top two limbs of the
// running remainder (r2) and the top limb of the divisor (y1):
//
//	⌊r2/(y1+1)⌋ <= q <= min(Radix-1, ⌊r2/y1⌋)
//
// x >= y, and y is normalized.
func divBrute(x, y Nat) (Nat, Nat) {
	k := len(y)
	y1 := y[k-1]
	q := make(Nat, len(x)-k+1)
	rem := make(Nat, k+1)
	prod := make(Nat, k+1)
	copy(rem, x[len(x)-k+1:])

	for i := len(x) - k; i >= 0; i-- {
		copy(rem[1:], rem[:k])
		rem[0] = x[i]

		r2 := rem[k]*Radix + rem[k-1]
		lo := r2 / (y1 + 1)
		hi := min(r2/y1, Radix-1)
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			mulWord(prod, y, mid)
			if _, ord := cmpEqualLen(prod, rem); ord <= 0 {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		if lo > 0 {
			mulWord(prod, y, lo)
			sub(rem, rem, prod)
		}
		q[i] = lo
	}
	return q.norm(), rem.norm()
}

// divNewton divides through a reciprocal of the divisor. When x is more
// than twice as long as y, the divisor is scaled by Radix^s so the
// reciprocal carries enough limbs for the whole quotient:
//
//	v = ⌊Radix^(2k+s) / y⌋,  q = ⌊x·v / Radix^(2k+s)⌋
//
// which is the true quotient or one less.
func divNewton(x, y Nat) (Nat, Nat) {
	n, k := len(x), len(y)
	s := max(0, n-2*k)

	v := reciprocal(shlLimbs(nil, y, s))
	q := Nat(nil).Mul(x, v)
	q = shrLimbs(q, q, 2*k+s)

	r := Nat(nil).Sub(x, Nat(nil).Mul(q, y))
	for i := 0; r.Cmp(y) >= 0; i++ {
		if i == maxNewtonCorrections {
			panic("nat: Newton quotient correction did not converge")
		}
		r = r.Sub(r, y)
		q = q.Inc(q)
	}
	return q, r
}

// reciprocal returns ⌊Radix^(2k) / y⌋ for the normalized k-limb y.
//
// Long divisors recurse on their top h = ⌈(k+2)/2⌉ limbs and refine with one
// Newton step:
//
//	v1 = 2·v0·Radix^(k-h) - ⌊y·v0² / Radix^(2h)⌋
//
// v1 never exceeds the exact reciprocal by more than one and falls short by
// less than Radix, which fixReciprocal then closes exactly.
func reciprocal(y Nat) Nat {
	k := len(y)
	switch {
	case k == 1:
		return Nat(nil).SetUint64(Radix * Radix / y[0])
	case k == 2:
		return reciprocal2(y)
	case k <= newtonBaseLimbs:
		v, _ := divBrute(pow(2*k), y)
		return v
	}

	h := (k + 3) / 2
	v0 := reciprocal(y[k-h:])

	t := Nat(nil).Mul(v0, v0)
	t = t.Mul(t, y)
	t = shrLimbs(t, t, 2*h)

	v := Nat(nil).Add(v0, v0)
	v = shlLimbs(v, v, k-h)
	v = v.Sub(v, t)
	return fixReciprocal(v, y)
}

// reciprocal2 computes ⌊Radix^4 / y⌋ for a two-limb y with 128-bit word
// division.
func reciprocal2(y Nat) Nat {
	d := y[1]*Radix + y[0]
	hi, lo := bits.Mul64(Radix*Radix, Radix*Radix)
	qhi := hi / d
	qlo, _ := bits.Div64(hi%d, lo, d)
	return fromUint128(qhi, qlo)
}

// fromUint128 converts the 128-bit value hi·2^64 + lo to a magnitude.
func fromUint128(hi, lo uint64) Nat {
	var z Nat
	for hi != 0 || lo != 0 {
		var r uint64
		qhi := hi / Radix
		lo, r = bits.Div64(hi%Radix, lo, Radix)
		hi = qhi
		z = append(z, r)
	}
	return z
}

// fixReciprocal turns an estimate v of ⌊Radix^(2k) / y⌋, k = len(y), into
// the exact value. v may exceed the exact value by at most a few units.
func fixReciprocal(v, y Nat) Nat {
	num := pow(2 * len(y))
	p := Nat(nil).Mul(y, v)
	for i := 0; p.Cmp(num) > 0; i++ {
		if i == maxNewtonCorrections {
			panic("nat: reciprocal correction did not converge")
		}
		p = p.Sub(p, y)
		v = v.Dec(v)
	}
	rest := Nat(nil).Sub(num, p)
	if rest.Cmp(y) >= 0 {
		d, _ := divBrute(rest, y)
		v = v.Add(v, d)
	}
	return v
}
