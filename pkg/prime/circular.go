package prime

import (
	"fmt"
)

// Rotations returns the distinct cyclic digit rotations of |n|, starting with |n| itself.
// A rotation with leading zeros takes its numeric value, so 101 yields 101, 11 and 110.
// Rotations of 19-digit inputs may exceed math.MaxInt64, hence uint64.
func Rotations(n int64) []uint64 {
	v := abs(n)

	digits := 1
	pow := uint64(1) // 10^(digits-1)
	for w := v; w >= 10; w /= 10 {
		digits++
		pow *= 10
	}

	seen := make(map[uint64]struct{}, digits)
	rotations := make([]uint64, 0, digits)
	for range digits {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			rotations = append(rotations, v)
		}
		// Move the leading digit to the end; stays below 10^digits.
		v = (v%pow)*10 + v/pow
	}
	return rotations
}

// IsCircularPrime reports whether every rotation of the prime n is also prime.
// It fails with ErrNotPrime when n itself is not prime.
func IsCircularPrime(n int64) (bool, error) {
	if !IsPrime(n) {
		return false, fmt.Errorf("circular prime check of %d: %w", n, ErrNotPrime)
	}
	for _, r := range Rotations(n) {
		if !isPrimeUint64(r) {
			return false, nil
		}
	}
	return true, nil
}

// abs returns |n| without overflowing on math.MinInt64.
func abs(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}
