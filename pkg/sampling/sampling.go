// Package sampling holds the random-draw primitives shared by the generators.
// Every function takes its random source explicitly; nothing reads global state.
package sampling

import (
	"fmt"
	"math/rand/v2"

	"github.com/gnana997/stockgen/pkg/catalog"
)

// NewStream returns a generator for one independent stream of a seeded run.
// Distinct stream ids under the same seed never share state, so concurrent
// workers stay reproducible regardless of scheduling.
func NewStream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// RandomSeed draws a fresh seed for runs that did not request one.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// WithoutReplacement returns a uniformly random k-subsequence of candidates
// as a new slice. When k >= len(candidates) it returns a copy of all
// candidates in their original order. The input is never modified.
func WithoutReplacement[T any](candidates []T, k int, r *rand.Rand) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: cannot sample %d items", catalog.ErrQuota, k)
	}

	out := make([]T, len(candidates))
	copy(out, candidates)
	if k >= len(out) {
		return out, nil
	}

	// Partial Fisher-Yates: the first k slots end up a uniform random sample
	// in uniform random order.
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:k:k], nil
}

// Pick returns a uniformly chosen element of pool. pool must not be empty.
func Pick[T any](r *rand.Rand, pool []T) T {
	return pool[r.IntN(len(pool))]
}

// IntBetween returns a uniform integer in the closed interval [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.IntN(hi-lo+1)
}

// HexColor returns a uniform color over the full 24-bit RGB space as #rrggbb.
func HexColor(r *rand.Rand) string {
	return fmt.Sprintf("#%06x", r.IntN(1<<24))
}
