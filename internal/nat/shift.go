package nat

// shlLimbs stores x·Radix^s in z. z may alias x.
func shlLimbs(z, x Nat, s int) Nat {
	if len(x) == 0 {
		return z[:0]
	}
	if s <= 0 {
		return z.Set(x)
	}
	n := len(x)
	z = z.make(n + s)
	copy(z[s:], x[:n])
	clear(z[:s])
	return z
}

// shrLimbs stores ⌊x / Radix^s⌋ in z. z may alias x.
func shrLimbs(z, x Nat, s int) Nat {
	if s <= 0 {
		return z.Set(x)
	}
	if s >= len(x) {
		return z[:0]
	}
	n := len(x) - s
	z = z.make(n)
	copy(z, x[s:])
	return z
}

// pow returns Radix^k.
func pow(k int) Nat {
	z := make(Nat, k+1)
	z[k] = 1
	return z
}
