package fft

import (
	"math"
	"sync"
)

// RootTable caches the complex roots of unity e^{2πij/N}, j < N/2, for the
// largest transform length N requested so far. Shorter transforms read the
// same table with a stride of N/n. The table only grows, and a published
// slice is never written again, so readers may keep using it after the lock
// is released.
type RootTable struct {
	mu    sync.RWMutex
	roots []complex128
}

var defaultRoots RootTable

// Roots returns the process-wide root table.
func Roots() *RootTable { return &defaultRoots }

// For returns a table serving transforms of length n: len(roots) >= n/2 and
// roots[j] = e^{2πij/(2·len(roots))}.
func (t *RootTable) For(n int) []complex128 {
	half := n / 2
	t.mu.RLock()
	r := t.roots
	t.mu.RUnlock()
	if len(r) >= half {
		return r
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.roots) >= half {
		return t.roots
	}
	t.roots = computeRoots(n)
	return t.roots
}

// Order returns the transform length N the table currently serves.
func (t *RootTable) Order() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return 2 * len(t.roots)
}

// computeRoots evaluates every root directly rather than by repeated
// multiplication, so the error of each entry stays at one rounding.
func computeRoots(n int) []complex128 {
	r := make([]complex128, n/2)
	step := 2 * math.Pi / float64(n)
	for j := range r {
		s, c := math.Sincos(step * float64(j))
		r[j] = complex(c, s)
	}
	return r
}
