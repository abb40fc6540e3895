package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbtrnl/primes/pkg/batch"
	"github.com/dbtrnl/primes/pkg/input"
	"github.com/dbtrnl/primes/pkg/prime"
)

func newCheckCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check N...",
		Short: "Report whether each number is prime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnArgs(cmd, cfg, batch.OpIsPrime, args)
		},
	}
}

func newFactorCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factor N...",
		Short: "Print the largest prime factor of each number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := batch.OpLargestFactor
			if cfg.All {
				op = batch.OpFactors
			}
			return runOnArgs(cmd, cfg, op, args)
		},
	}
	cmd.Flags().BoolVar(&cfg.All, "all", false, "Print the full prime factorization")
	return cmd
}

func newCircularCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "circular N...",
		Short: "Report whether each prime is a circular prime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnArgs(cmd, cfg, batch.OpCircular, args)
		},
	}
}

func newBatchCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Evaluate every number in FILE (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := batch.ParseOp(cfg.Op)
			if err != nil {
				return errWithCode(err, exitError)
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errWithCode(fmt.Errorf("open input: %w", err), exitError)
				}
				defer f.Close()
				r = f
			}

			inputs, err := input.Parse(r)
			if err != nil {
				return errWithCode(fmt.Errorf("parse input: %w", err), exitError)
			}
			return evaluate(cmd, cfg, op, inputs)
		},
	}
	cmd.Flags().StringVar(&cfg.Op, "op", string(batch.OpIsPrime), "Operation: is-prime, largest-factor, factors or circular")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "Concurrent workers (default one per CPU)")
	return cmd
}

func newBelowCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "below LIMIT",
		Short: "List every prime smaller than LIMIT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseArg(args[0])
			if err != nil {
				return err
			}
			primes, err := prime.PrimesBelow(limit)
			if err != nil {
				return errWithCode(err, exitError)
			}
			return writeList(cmd.OutOrStdout(), cfg, primes)
		},
	}
}

func newNthCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "nth N",
		Short: "Print the N-th prime (the first prime is 2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseArg(args[0])
			if err != nil {
				return err
			}
			nth, err := toInt(n)
			if err != nil {
				return err
			}
			p, err := prime.NthPrime(nth)
			if err != nil {
				return errWithCode(err, exitError)
			}
			return writeList(cmd.OutOrStdout(), cfg, []int64{p})
		},
	}
}

func newDigitsCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "digits D",
		Short: "List every prime with exactly D decimal digits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseArg(args[0])
			if err != nil {
				return err
			}
			digits, err := toInt(d)
			if err != nil {
				return err
			}
			primes, err := prime.PrimesWithDigits(digits)
			if err != nil {
				return errWithCode(err, exitError)
			}
			return writeList(cmd.OutOrStdout(), cfg, primes)
		},
	}
}

func runOnArgs(cmd *cobra.Command, cfg *Config, op batch.Op, args []string) error {
	inputs, err := input.ParseArgs(args)
	if err != nil {
		return errWithCode(fmt.Errorf("parse arguments: %w", err), exitError)
	}
	return evaluate(cmd, cfg, op, inputs)
}

func evaluate(cmd *cobra.Command, cfg *Config, op batch.Op, inputs []int64) error {
	start := time.Now()
	slog.Info("starting evaluation", "op", op, "inputs", len(inputs))

	results, err := runBatch(cmd.Context(), cfg, op, inputs)
	if err != nil {
		return errWithCode(err, exitError)
	}

	stats := batch.Summary(results)
	slog.Info("evaluation completed", "dur", time.Since(start),
		"total", stats.Total, "prime", stats.Prime, "failed", stats.Failed)

	if err := writeResults(cmd.OutOrStdout(), cfg, op, results); err != nil {
		return errWithCode(fmt.Errorf("format results: %w", err), exitError)
	}
	return exitCodeFor(op, results)
}

func runBatch(ctx context.Context, cfg *Config, op batch.Op, inputs []int64) ([]batch.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	evaluator, err := batch.NewEvaluator(batch.Options{Op: op, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	return evaluator.Evaluate(ctx, inputs)
}

// toInt narrows n to int, which is 32 bits wide on some platforms.
func toInt(n int64) (int, error) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, errWithCode(fmt.Errorf("%d does not fit in int: %w", n, prime.ErrInvalidArgument), exitError)
	}
	return int(n), nil
}

func parseArg(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errWithCode(fmt.Errorf("invalid number %q", s), exitError)
	}
	return n, nil
}
