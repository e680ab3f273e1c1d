package fft

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Number-theoretic transform
// ─────────────────────────────────────────────────────────────────────────────

// MaxNTTLength is the longest transform supported by all three primes
// (998244353 - 1 = 119·2^23).
const MaxNTTLength = 1 << 23

// modulus is an NTT-friendly prime with primitive root g.
type modulus struct {
	p, g uint64
}

// The product of the primes is about 7.8·10^25, which bounds every
// coefficient of a convolution of 2^22 words below 10^8.
var primes = [3]modulus{
	{p: 998244353, g: 3},
	{p: 167772161, g: 3},
	{p: 469762049, g: 3},
}

// Garner constants.
var (
	p12       = primes[0].p * primes[1].p
	inv1mod2  = powMod(primes[0].p%primes[1].p, primes[1].p-2, primes[1].p)
	inv12mod3 = powMod(p12%primes[2].p, primes[2].p-2, primes[2].p)
)

func powMod(b, e, p uint64) uint64 {
	r := uint64(1)
	b %= p
	for e > 0 {
		if e&1 != 0 {
			r = r * b % p
		}
		b = b * b % p
		e >>= 1
	}
	return r
}

// NTTLength returns the modular transform length used to multiply operands
// of n and m words.
func NTTLength(n, m int) int {
	return NextPowerOfTwo(n + m)
}

// ntt transforms a in place modulo md.p. tw is scratch of at least len(a)/2.
func (md modulus) ntt(a, tw []uint64, inverse bool) {
	n := len(a)
	if n <= 1 {
		return
	}
	p := md.p
	bitReverse(a)
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		w := powMod(md.g, (p-1)/uint64(size), p)
		if inverse {
			w = powMod(w, p-2, p)
		}
		tw[0] = 1
		for k := 1; k < half; k++ {
			tw[k] = tw[k-1] * w % p
		}
		for start := 0; start < n; start += size {
			lo := a[start : start+half]
			hi := a[start+half : start+size]
			for k := range lo {
				u := lo[k]
				v := hi[k] * tw[k] % p
				s := u + v
				if s >= p {
					s -= p
				}
				d := u + p - v
				if d >= p {
					d -= p
				}
				lo[k], hi[k] = s, d
			}
		}
	}
	if inverse {
		nInv := powMod(uint64(n), p-2, p)
		for i := range a {
			a[i] = a[i] * nInv % p
		}
	}
}

// ConvolveNTT stores the product of x and y, little-endian sequences of
// words below radix, into z, with len(z) == len(x)+len(y). The combined
// length must not exceed MaxNTTLength and radix must not exceed 10^8.
func ConvolveNTT(z, x, y []uint64, radix uint64) {
	n := NTTLength(len(x), len(y))
	if n > MaxNTTLength {
		panic("fft: operands too long for the modular transform")
	}

	tw := wordPool.acquire(n / 2)
	defer wordPool.release(tw)
	b := wordPool.acquire(n)
	defer wordPool.release(b)

	var res [len(primes)][]uint64
	for k, md := range primes {
		a := wordPool.acquire(n)
		defer wordPool.release(a)
		copy(a, x)
		clear(b)
		copy(b, y)
		md.ntt(a, tw, false)
		md.ntt(b, tw, false)
		for i := range a {
			a[i] = a[i] * b[i] % md.p
		}
		md.ntt(a, tw, true)
		res[k] = a
	}

	p1, p2, p3 := primes[0].p, primes[1].p, primes[2].p
	var chi, clo uint64
	for i := range z {
		r1, r2, r3 := res[0][i], res[1][i], res[2][i]

		t2 := (r2 + p2 - r1%p2) % p2 * inv1mod2 % p2
		x12 := r1 + p1*t2
		t3 := (r3 + p3 - x12%p3) % p3 * inv12mod3 % p3
		hi, lo := bits.Mul64(p12, t3)
		lo, c := bits.Add64(lo, x12, 0)
		hi += c

		clo, c = bits.Add64(clo, lo, 0)
		chi += hi + c

		qhi := chi / radix
		qlo, rem := bits.Div64(chi%radix, clo, radix)
		z[i] = rem
		chi, clo = qhi, qlo
	}
}
