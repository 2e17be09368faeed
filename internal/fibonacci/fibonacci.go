// Package fibonacci provides four strategies for computing Fibonacci numbers
// on uint64 values, trading time against auxiliary memory:
//
//   - Recursive: naive recursion, exponential time, no cache.
//   - Memoized: recursion over a caller-supplied table.
//   - Iterative: sliding pair, O(n) time and O(1) space.
//   - IterativeArray: bottom-up buffer of n+1 slots, O(n) time and space.
//
// Every strategy checks each addition before performing it and reports an
// apperrors.OverflowError instead of returning a wrapped value.
package fibonacci

import (
	"math"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// Display names, matching the reference harness output.
const (
	NameRecursive      = "Fib Rec"
	NameMemoized       = "Fib Rec Memo"
	NameIterative      = "Fib Loop"
	NameIterativeArray = "Fib Loop Memory"
)

// checkedAdd returns a+b, or an OverflowError attributed to strategy when the
// sum would exceed math.MaxUint64.
func checkedAdd(a, b uint64, strategy string, n uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, apperrors.OverflowError{Strategy: strategy, N: n}
	}
	return a + b, nil
}

// Recursive computes F(n) as F(n-1) + F(n-2).
//
//go:noinline
func Recursive(n uint64) (uint64, error) {
	if n < 2 {
		return n, nil
	}
	a, err := Recursive(n - 1)
	if err != nil {
		return 0, err
	}
	b, err := Recursive(n - 2)
	if err != nil {
		return 0, err
	}
	return checkedAdd(a, b, NameRecursive, n)
}

// Memoized computes F(n) recursively, reading and filling cache. A zero entry
// means "not yet computed". The caller owns cache and must zero it between
// independent computations; n must be smaller than len(cache).
//
//go:noinline
func Memoized(n uint64, cache []uint64) (uint64, error) {
	if n >= uint64(len(cache)) {
		return 0, apperrors.CapacityError{Index: n, Capacity: len(cache)}
	}
	if n < 2 {
		return n, nil
	}
	if v := cache[n]; v != 0 {
		return v, nil
	}
	a, err := Memoized(n-1, cache)
	if err != nil {
		return 0, err
	}
	b, err := Memoized(n-2, cache)
	if err != nil {
		return 0, err
	}
	v, err := checkedAdd(a, b, NameMemoized, n)
	if err != nil {
		return 0, err
	}
	cache[n] = v
	return v, nil
}

// Iterative computes F(n) keeping only the last two values.
//
//go:noinline
func Iterative(n uint64) (uint64, error) {
	if n < 2 {
		return n, nil
	}
	a, b := uint64(0), uint64(1)
	for i := uint64(2); i <= n; i++ {
		next, err := checkedAdd(a, b, NameIterative, n)
		if err != nil {
			return 0, err
		}
		a, b = b, next
	}
	return b, nil
}

// IterativeArray computes F(n) by filling a freshly allocated buffer of n+1
// values. The buffer does not outlive the call.
//
//go:noinline
func IterativeArray(n uint64) (uint64, error) {
	if n < 2 {
		return n, nil
	}
	if n >= MaxArrayLen {
		return 0, apperrors.ResourceError{Requested: n + 1, Limit: MaxArrayLen}
	}
	seq := make([]uint64, n+1)
	seq[1] = 1
	for i := uint64(2); i <= n; i++ {
		v, err := checkedAdd(seq[i-1], seq[i-2], NameIterativeArray, n)
		if err != nil {
			return 0, err
		}
		seq[i] = v
	}
	return seq[n], nil
}
