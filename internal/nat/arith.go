package nat

// ─────────────────────────────────────────────────────────────────────────────
// Limb-range primitives
// ─────────────────────────────────────────────────────────────────────────────
//
// The primitives below work on caller-sized views and never allocate. Output
// views may alias an input only when both start at the same limb.

// inc stores x+1 in z[:len(x)] and reports a carry out of the top limb.
// len(z) must be at least len(x).
func inc(z, x Nat) bool {
	for i, v := range x {
		v++
		if v < Radix {
			z[i] = v
			copy(z[i+1:len(x)], x[i+1:])
			return false
		}
		z[i] = 0
	}
	return true
}

// dec stores x-1 in z[:len(x)] and reports whether the top limb became
// zero. x must be nonzero.
func dec(z, x Nat) bool {
	n := len(x)
	for i, v := range x {
		if v != 0 {
			z[i] = v - 1
			copy(z[i+1:n], x[i+1:])
			return z[n-1] == 0
		}
		z[i] = Radix - 1
	}
	panic("nat: decrement of zero")
}

// cmpEqualLen compares two views of the same length. idx is one plus the
// index of the highest differing limb, 0 when x == y.
func cmpEqualLen(x, y Nat) (idx, ord int) {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return i + 1, -1
			}
			return i + 1, 1
		}
	}
	return 0, 0
}

// add stores x+y in z[:len(x)] and reports the carry out. len(x) >= len(y).
func add(z, x, y Nat) bool {
	var c Word
	for i, yi := range y {
		s := x[i] + yi + c
		if s >= Radix {
			z[i] = s - Radix
			c = 1
		} else {
			z[i] = s
			c = 0
		}
	}
	m := len(y)
	if c == 0 {
		copy(z[m:len(x)], x[m:])
		return false
	}
	return inc(z[m:], x[m:])
}

// sub stores x-y in z[:len(x)] and returns the length of the result without
// high zero limbs. x >= y and len(x) >= len(y).
func sub(z, x, y Nat) int {
	var b Word
	for i, yi := range y {
		d := yi + b
		if x[i] < d {
			z[i] = x[i] + Radix - d
			b = 1
		} else {
			z[i] = x[i] - d
			b = 0
		}
	}
	m, n := len(y), len(x)
	if b != 0 {
		dec(z[m:], x[m:])
	} else {
		copy(z[m:n], x[m:])
	}
	for n > 0 && z[n-1] == 0 {
		n--
	}
	return n
}

// mulWord stores x·w in z[:len(x)+1]. w < Radix.
func mulWord(z, x Nat, w Word) {
	var c Word
	for i, xi := range x {
		t := xi*w + c
		z[i] = t % Radix
		c = t / Radix
	}
	z[len(x)] = c
}

// ─────────────────────────────────────────────────────────────────────────────
// Magnitude operations
// ─────────────────────────────────────────────────────────────────────────────

// Add stores x+y in z.
func (z Nat) Add(x, y Nat) Nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return z.Set(x)
	}
	n := len(x)
	z = z.make(n + 1)
	if add(z, x, y) {
		z[n] = 1
		return z
	}
	return z[:n]
}

// Sub stores x-y in z. The caller guarantees x >= y.
func (z Nat) Sub(x, y Nat) Nat {
	if len(y) == 0 {
		return z.Set(x)
	}
	if len(x) == len(y) {
		idx, ord := cmpEqualLen(x, y)
		if ord == 0 {
			return z[:0]
		}
		// Limbs above idx cancel.
		x, y = x[:idx], y[:idx]
	}
	z = z.make(len(x))
	return z[:sub(z, x, y)]
}

// Inc stores x+1 in z.
func (z Nat) Inc(x Nat) Nat {
	n := len(x)
	z = z.make(n + 1)
	if inc(z, x) {
		z[n] = 1
		return z
	}
	return z[:n]
}

// Dec stores x-1 in z. x must be nonzero.
func (z Nat) Dec(x Nat) Nat {
	n := len(x)
	z = z.make(n)
	if dec(z, x) {
		return z[:n-1]
	}
	return z
}
