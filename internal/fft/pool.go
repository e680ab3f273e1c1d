// This file provides size-class pooling of transform buffers to reduce GC pressure.

package fft

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Size-class pools
// ─────────────────────────────────────────────────────────────────────────────

// poolClasses is the number of size classes: 64, 256, 1K, 4K, 16K, 64K,
// 256K, 1M and 4M elements. Larger buffers are allocated directly.
const poolClasses = 9

// poolSize returns the element count of size class i (4^(i+3)).
func poolSize(i int) int {
	return 64 << (2 * uint(i))
}

// poolIndex returns the size class for size, or -1 when size is too large
// for pooling. Classes are powers of 4, so bits.Len maps directly to the
// index.
func poolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > poolSize(poolClasses-1) {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// bufferPool pools slices of T by size class.
type bufferPool[T any] struct {
	pools [poolClasses]sync.Pool
}

// acquire returns a zeroed slice of exactly size elements. It should be
// released with release, preferably with defer:
//
//	buf := complexPool.acquire(n)
//	defer complexPool.release(buf)
func (bp *bufferPool[T]) acquire(size int) []T {
	idx := poolIndex(size)
	if idx < 0 {
		return make([]T, size)
	}
	if buf, ok := bp.pools[idx].Get().([]T); ok {
		clear(buf)
		return buf[:size]
	}
	return make([]T, size, poolSize(idx))
}

// release returns buf to its pool. Slices whose capacity is not exactly a
// size class were allocated directly and are left to the GC.
func (bp *bufferPool[T]) release(buf []T) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := poolIndex(c)
	if idx >= 0 && poolSize(idx) == c {
		bp.pools[idx].Put(buf[:c])
	}
}

// prewarm stores count buffers of the class holding size.
func (bp *bufferPool[T]) prewarm(size, count int) {
	idx := poolIndex(size)
	if idx < 0 {
		return
	}
	for range count {
		bp.pools[idx].Put(make([]T, poolSize(idx)))
	}
}

var (
	complexPool bufferPool[complex128]
	wordPool    bufferPool[uint64]
)

// PreWarm fills the pools with the buffers needed to multiply two operands
// of n and m limbs, and grows the root table for the complex transform, so
// the first large product does not pay for them.
func PreWarm(n, m int) {
	if n <= 0 || m <= 0 {
		return
	}
	if l := FloatLength(n, m); l <= MaxFloatLength {
		complexPool.prewarm(l, 2)
		if rt := Roots(); rt.Order() < l {
			rt.For(l)
		}
		return
	}
	// Three residue sequences plus the scratch operand and twiddles.
	l := NTTLength(n, m)
	wordPool.prewarm(l, 5)
}
