package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dbtrnl/primes/pkg/prime"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		in      string
		want    Op
		wantErr bool
	}{
		{in: "is-prime", want: OpIsPrime},
		{in: " Largest-Factor ", want: OpLargestFactor},
		{in: "factors", want: OpFactors},
		{in: "circular", want: OpCircular},
		{in: "sieve", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOp(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "unknown operation")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewEvaluator(t *testing.T) {
	e, err := NewEvaluator(Options{})
	require.NoError(t, err)
	require.Equal(t, OpIsPrime, e.opts.Op)
	require.Positive(t, e.opts.Workers)

	_, err = NewEvaluator(Options{Op: "bogus"})
	require.Error(t, err)
}

func TestEvaluateIsPrime(t *testing.T) {
	e, err := NewEvaluator(Options{Op: OpIsPrime, Workers: 4})
	require.NoError(t, err)

	inputs := []int64{-7, 0, 1, 2, 3, 4, 9, 97, 100, 7919, 7921}
	results, err := e.Evaluate(t.Context(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, r := range results {
		require.Equal(t, inputs[i], r.Input, "results must keep input order")
		require.Equal(t, prime.IsPrime(inputs[i]), r.Prime, "input %d", inputs[i])
		require.NoError(t, r.Err)
	}

	require.Equal(t, Stats{Total: 11, Prime: 4, Failed: 0}, Summary(results))
}

func TestEvaluateLargestFactorRecordsFailures(t *testing.T) {
	e, err := NewEvaluator(Options{Op: OpLargestFactor, Workers: 2})
	require.NoError(t, err)

	results, err := e.Evaluate(t.Context(), []int64{13195, 0, 600851475143, -3, 17})
	require.NoError(t, err)

	require.Equal(t, int64(29), results[0].LargestFactor)
	require.ErrorIs(t, results[1].Err, prime.ErrInvalidArgument)
	require.Equal(t, int64(6857), results[2].LargestFactor)
	require.ErrorIs(t, results[3].Err, prime.ErrInvalidArgument)
	require.Equal(t, int64(17), results[4].LargestFactor)

	require.Equal(t, 2, Summary(results).Failed)
}

func TestEvaluateFactorsAndCircular(t *testing.T) {
	e, err := NewEvaluator(Options{Op: OpFactors})
	require.NoError(t, err)
	results, err := e.Evaluate(t.Context(), []int64{12, 97})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 2, 3}, results[0].Factors)
	require.Equal(t, []int64{97}, results[1].Factors)

	e, err = NewEvaluator(Options{Op: OpCircular})
	require.NoError(t, err)
	results, err = e.Evaluate(t.Context(), []int64{197, 23, 4})
	require.NoError(t, err)
	require.True(t, results[0].Circular)
	require.False(t, results[1].Circular)
	require.ErrorIs(t, results[2].Err, prime.ErrNotPrime)
}

func TestEvaluateMemoizesRepeatedInputs(t *testing.T) {
	e, err := NewEvaluator(Options{Op: OpLargestFactor})
	require.NoError(t, err)

	inputs := make([]int64, 0, 200)
	for range 100 {
		inputs = append(inputs, 13195, 17)
	}
	results, err := e.Evaluate(t.Context(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 200)
	require.Equal(t, 2, e.cache.Len())

	// Pure results: a second run yields the same answers.
	again, err := e.Evaluate(t.Context(), inputs)
	require.NoError(t, err)
	require.Equal(t, results, again)
}

func TestEvaluateDuplicateResultsAreIndependent(t *testing.T) {
	e, err := NewEvaluator(Options{Op: OpFactors})
	require.NoError(t, err)

	results, err := e.Evaluate(t.Context(), []int64{12, 12})
	require.NoError(t, err)

	results[0].Factors[0] = 99
	require.Equal(t, []int64{2, 2, 3}, results[1].Factors)

	again, err := e.Evaluate(t.Context(), []int64{12})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 2, 3}, again[0].Factors)
}

func TestEvaluateEmpty(t *testing.T) {
	e, err := NewEvaluator(Options{})
	require.NoError(t, err)

	_, err = e.Evaluate(t.Context(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no inputs")
}

func TestEvaluateCanceled(t *testing.T) {
	e, err := NewEvaluator(Options{Workers: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = e.Evaluate(ctx, []int64{2, 3, 5})
	require.ErrorIs(t, err, context.Canceled)
}
