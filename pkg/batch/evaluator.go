package batch

import (
	"context"
	"fmt"
	"log/slog"
	goruntime "runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dbtrnl/primes/internal/memo"
	"github.com/dbtrnl/primes/pkg/prime"
)

// Options holds configuration options for the evaluator.
type Options struct {
	Op      Op  // operation applied to every input
	Workers int // concurrent workers; defaults to runtime.NumCPU()
}

// Evaluator applies a single operation to batches of inputs.
// Results are memoized per input for the evaluator's lifetime.
type Evaluator struct {
	opts  Options
	cache *memo.Cache[int64, Result]
}

// NewEvaluator creates a new evaluator with the given options.
func NewEvaluator(opts Options) (*Evaluator, error) {
	if opts.Op == "" {
		opts.Op = OpIsPrime
	}
	if _, err := ParseOp(string(opts.Op)); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = goruntime.NumCPU()
	}
	return &Evaluator{
		opts:  opts,
		cache: memo.New[int64, Result](),
	}, nil
}

// Evaluate runs the operation for every input and returns results in input order.
// A failure on one input is recorded in its Result.Err; only context
// cancellation aborts the batch.
func (e *Evaluator) Evaluate(ctx context.Context, inputs []int64) ([]Result, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs provided")
	}

	slog.Debug("evaluating batch", "op", e.opts.Op, "inputs", len(inputs), "workers", e.opts.Workers)

	// Each goroutine owns exactly one slot, so no locking is needed.
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for idx, n := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := e.cache.Compute(n, e.evaluate)
			// Cached slices are shared across duplicate inputs.
			r.Factors = slices.Clone(r.Factors)
			results[idx] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", e.opts.Op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", e.opts.Op, err)
	}
	return results, nil
}

func (e *Evaluator) evaluate(n int64) Result {
	r := Result{Input: n, Prime: prime.IsPrime(n)}

	switch e.opts.Op {
	case OpIsPrime:
	case OpLargestFactor:
		r.LargestFactor, r.Err = prime.LargestPrimeFactor(n)
	case OpFactors:
		r.Factors, r.Err = prime.Factors(n)
	case OpCircular:
		r.Circular, r.Err = prime.IsCircularPrime(n)
	}

	if r.Err != nil {
		slog.Debug("input failed", "op", e.opts.Op, "input", n, "error", r.Err)
	}
	return r
}
