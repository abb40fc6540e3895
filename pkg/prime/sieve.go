package prime

import (
	"fmt"
	"math"
)

const (
	// MaxSieveLimit bounds the memory a single sieve may allocate.
	MaxSieveLimit = 50_000_000

	// MaxDigits is the widest digit count accepted by PrimesWithDigits.
	MaxDigits = 7
)

// sieve returns a table where composite[i] is true for every composite i < limit.
// Entries 0 and 1 are marked composite.
func sieve(limit int64) []bool {
	composite := make([]bool, limit)
	for i := range min(limit, 2) {
		composite[i] = true
	}
	for i := int64(2); i*i < limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j < limit; j += i {
			composite[j] = true
		}
	}
	return composite
}

// PrimesBelow returns every prime strictly smaller than limit, ascending.
func PrimesBelow(limit int64) ([]int64, error) {
	if limit < 0 {
		return nil, fmt.Errorf("primes below %d: must be greater or equal than zero: %w", limit, ErrInvalidArgument)
	}
	if limit > MaxSieveLimit {
		return nil, fmt.Errorf("primes below %d: exceeds sieve limit %d: %w", limit, MaxSieveLimit, ErrInvalidArgument)
	}

	primes := []int64{}
	for i, c := range sieve(limit) {
		if !c {
			primes = append(primes, int64(i))
		}
	}
	return primes, nil
}

// NthPrime returns the n-th prime, counting 2 as the first.
func NthPrime(n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("nth prime %d: must be greater than zero: %w", n, ErrInvalidArgument)
	}

	bound := nthPrimeBound(n)
	if bound > MaxSieveLimit {
		return 0, fmt.Errorf("nth prime %d: exceeds sieve limit %d: %w", n, MaxSieveLimit, ErrInvalidArgument)
	}

	count := 0
	for i, c := range sieve(bound) {
		if c {
			continue
		}
		count++
		if count == n {
			return int64(i), nil
		}
	}
	// Unreachable while nthPrimeBound holds.
	return 0, fmt.Errorf("nth prime %d: not found below %d", n, bound)
}

// nthPrimeBound is an exclusive upper bound for the n-th prime
// (Rosser's theorem: p_n < n(ln n + ln ln n) for n >= 6).
func nthPrimeBound(n int) int64 {
	if n < 6 {
		return 14
	}
	f := float64(n)
	return int64(f*(math.Log(f)+math.Log(math.Log(f)))) + 1
}

// PrimesWithDigits returns every prime with exactly digits decimal digits, ascending.
func PrimesWithDigits(digits int) ([]int64, error) {
	if digits <= 0 {
		return nil, fmt.Errorf("primes with %d digits: must be greater than zero: %w", digits, ErrInvalidArgument)
	}
	if digits > MaxDigits {
		return nil, fmt.Errorf("primes with %d digits: at most %d digits supported: %w", digits, MaxDigits, ErrInvalidArgument)
	}

	lower := pow10(digits - 1)
	all, err := PrimesBelow(pow10(digits))
	if err != nil {
		return nil, err
	}
	for i, p := range all {
		if p >= lower {
			return all[i:], nil
		}
	}
	return []int64{}, nil
}

func pow10(exp int) int64 {
	v := int64(1)
	for range exp {
		v *= 10
	}
	return v
}
