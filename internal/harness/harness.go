package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbtrnl/primes/pkg/batch"
)

// TestCase represents a single test scenario.
type TestCase struct {
	// Dir is the directory containing the test case.
	Dir string `yaml:"-"`

	// Description says what the case covers.
	Description string `yaml:"description"`

	// Op is the batch operation under test.
	Op string `yaml:"op"`

	// Workers overrides the evaluator concurrency.
	Workers int `yaml:"workers,omitempty"`

	// InputFile optionally names a number list (relative to Dir) to evaluate
	// instead of the expectation inputs.
	InputFile string `yaml:"input_file,omitempty"`

	// Expectations lists per-input expected outcomes.
	Expectations []Expectation `yaml:"expectations"`

	// Stats optionally asserts batch totals.
	Stats *ExpectedStats `yaml:"stats,omitempty"`
}

// TestResult represents the result of running a test case.
type TestResult struct {
	// TestCase is the test case that was run.
	TestCase *TestCase

	// Results is the raw evaluator output.
	Results []batch.Result

	// Success indicates if the test passed.
	Success bool

	// Message provides a summary of the result.
	Message string

	// Details lists every mismatch.
	Details []string
}

// TestHarness manages test execution.
type TestHarness struct {
	// root is the root directory for test data
	root string
}

// NewHarness creates a new test harness.
func NewHarness(root string) *TestHarness {
	return &TestHarness{root: root}
}

// Run evaluates a test case and validates the outcome.
func (h *TestHarness) Run(t *testing.T, tc *TestCase) *TestResult {
	t.Helper()
	require.NotEmpty(t, tc.Op, "test case has no op")

	op, err := batch.ParseOp(tc.Op)
	require.NoError(t, err)

	evaluator, err := batch.NewEvaluator(batch.Options{Op: op, Workers: tc.Workers})
	require.NoError(t, err)

	inputs := LoadInputs(t, h.root, tc)
	require.NotEmpty(t, inputs, "test case has no inputs")

	results, err := evaluator.Evaluate(t.Context(), inputs)
	require.NoError(t, err)

	result := &TestResult{TestCase: tc, Results: results}
	validateResults(result, tc, results)
	return result
}

func validateResults(tr *TestResult, tc *TestCase, results []batch.Result) {
	byInput := make(map[int64]batch.Result, len(results))
	for _, r := range results {
		if _, ok := byInput[r.Input]; !ok {
			byInput[r.Input] = r
		}
	}

	var details []string
	for _, exp := range tc.Expectations {
		got, ok := byInput[exp.Input]
		if !ok {
			details = append(details, fmt.Sprintf("%d: not evaluated", exp.Input))
			continue
		}
		details = append(details, compare(exp, got)...)
	}

	if tc.Stats != nil {
		stats := batch.Summary(results)
		want := batch.Stats{Total: tc.Stats.Total, Prime: tc.Stats.Prime, Failed: tc.Stats.Failed}
		if stats != want {
			details = append(details, fmt.Sprintf("stats mismatch: expected %+v, got %+v", want, stats))
		}
	}

	// Sort for consistent output.
	sort.Strings(details)

	tr.Details = details
	tr.Success = len(details) == 0
	if tr.Success {
		tr.Message = fmt.Sprintf("All %d expectations met", len(tc.Expectations))
	} else {
		tr.Message = fmt.Sprintf("Test failed: %d mismatches:\n  %s", len(details), strings.Join(details, "\n  "))
	}
}

func compare(exp Expectation, got batch.Result) []string {
	var details []string

	if exp.Error != "" {
		if got.Err == nil || !strings.Contains(got.Err.Error(), exp.Error) {
			details = append(details, fmt.Sprintf("%d: expected error containing %q, got %v", exp.Input, exp.Error, got.Err))
		}
		return details
	}
	if got.Err != nil {
		return append(details, fmt.Sprintf("%d: unexpected error: %v", exp.Input, got.Err))
	}

	if exp.Prime != nil && *exp.Prime != got.Prime {
		details = append(details, fmt.Sprintf("%d: expected prime=%t, got %t", exp.Input, *exp.Prime, got.Prime))
	}
	if exp.LargestFactor != 0 && exp.LargestFactor != got.LargestFactor {
		details = append(details, fmt.Sprintf("%d: expected largest factor %d, got %d", exp.Input, exp.LargestFactor, got.LargestFactor))
	}
	if exp.Factors != nil && !slices.Equal(exp.Factors, got.Factors) {
		details = append(details, fmt.Sprintf("%d: expected factors %v, got %v", exp.Input, exp.Factors, got.Factors))
	}
	if exp.Circular != nil && *exp.Circular != got.Circular {
		details = append(details, fmt.Sprintf("%d: expected circular=%t, got %t", exp.Input, *exp.Circular, got.Circular))
	}
	return details
}
