// Package prime provides primality testing and prime factorization helpers.
package prime

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an input lies outside a function's domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotPrime is returned by functions that require a prime input.
	ErrNotPrime = errors.New("input number must be prime")
)

// IsPrime reports whether n is prime. Zero, one and negative numbers are not prime.
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	return isPrimeUint64(uint64(n))
}

func isPrimeUint64(n uint64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}

	// Every prime above 3 has the form 6k±1.
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// LargestPrimeFactor returns the greatest prime dividing n.
// It fails with ErrInvalidArgument when n <= 1.
func LargestPrimeFactor(n int64) (int64, error) {
	if n <= 1 {
		return 0, fmt.Errorf("largest prime factor of %d: %w", n, ErrInvalidArgument)
	}

	var largest int64
	rest := n
	for rest%2 == 0 {
		largest = 2
		rest /= 2
	}
	for i := int64(3); i <= rest/i; i += 2 {
		for rest%i == 0 {
			largest = i
			rest /= i
		}
	}
	if rest > 1 {
		largest = rest
	}
	return largest, nil
}

// Factors returns the prime factorization of n in ascending order,
// repeating each prime according to its multiplicity.
func Factors(n int64) ([]int64, error) {
	if n <= 1 {
		return nil, fmt.Errorf("factors of %d: %w", n, ErrInvalidArgument)
	}

	var factors []int64
	rest := n
	for rest%2 == 0 {
		factors = append(factors, 2)
		rest /= 2
	}
	for i := int64(3); i <= rest/i; i += 2 {
		for rest%i == 0 {
			factors = append(factors, i)
			rest /= i
		}
	}
	if rest > 1 {
		factors = append(factors, rest)
	}
	return factors, nil
}
