// Package harness provides a YAML-driven test harness for the prime operations.
package harness

// Expectation is the expected outcome for a single input.
type Expectation struct {
	// Input is the number fed to the operation.
	Input int64 `yaml:"input"`

	// Prime, when set, is the expected primality of Input.
	Prime *bool `yaml:"prime,omitempty"`

	// LargestFactor is the expected largest prime factor (largest-factor op).
	LargestFactor int64 `yaml:"largest_factor,omitempty"`

	// Factors is the expected factorization (factors op).
	Factors []int64 `yaml:"factors,omitempty"`

	// Circular, when set, is the expected circular-prime verdict (circular op).
	Circular *bool `yaml:"circular,omitempty"`

	// Error is a substring the failure for Input must contain.
	Error string `yaml:"error,omitempty"`
}

// ExpectedStats are the expected batch totals.
type ExpectedStats struct {
	Total  int `yaml:"total"`
	Prime  int `yaml:"prime"`
	Failed int `yaml:"failed"`
}
