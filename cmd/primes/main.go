// Package main implements the CLI driver for the primes toolkit.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbtrnl/primes/internal/config"
	"github.com/dbtrnl/primes/pkg/batch"
)

// Config holds all command-line configuration options.
type Config struct {
	Verbose    bool   // enables debug logging and statistics
	JSON       bool   // enables JSON output format
	Profile    bool   // enables CPU and memory profiling
	ConfigPath string // YAML defaults file
	Op         string // batch operation
	Workers    int    // batch concurrency
	All        bool   // factor: print the full factorization
}

const (
	exitNegative = 1
	exitError    = 2
)

var (
	// Set via ldflags during build.
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	rootCmd := newRootCmd(&Config{})
	rootCmd.SetArgs(escapeNegativeNumbers(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		_ = teardown()
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		var cErr *codedError
		if errors.As(err, &cErr) {
			os.Exit(cErr.code)
		}
		os.Exit(exitError)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "primes",
		Short: "Prime number utilities",
		Long: `primes tests primality and factors integers.

Numbers may be given as arguments or, for batch, read from a file where
they are separated by whitespace or commas, '#' and '//' start comments
and "a..b" expands to an inclusive range.`,
		Example: `  primes check 97 7919 7921        # Exit 1 if any input is composite
  primes check -7                  # Negative numbers are never prime
  primes check --json -- -7 5      # Use -- when flags follow a negative number
  primes factor 600851475143       # Largest prime factor
  primes factor --all 13195        # Full factorization
  primes nth 10001                 # The 10001st prime
  primes batch --op factors nums.txt`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, cfg)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return teardown()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	// Set custom version template to include build info.
	rootCmd.SetVersionTemplate(fmt.Sprintf("primes version %s\n  commit: %s\n  built:  %s\n", version, gitCommit, buildTime))

	// Define flags.
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.JSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&cfg.Profile, "profile", false, "Enable CPU and memory profiling (writes cpu.prof and mem.prof to current directory)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigPath, "config", "", "YAML file with default settings (default "+config.DefaultFile+" if present)")

	rootCmd.AddCommand(
		newCheckCmd(cfg),
		newFactorCmd(cfg),
		newCircularCmd(cfg),
		newBelowCmd(cfg),
		newNthCmd(cfg),
		newDigitsCmd(cfg),
		newBatchCmd(cfg),
	)
	return rootCmd
}

// negativeNumberPattern matches a negative integer or a range starting at one
var negativeNumberPattern = regexp.MustCompile(`^-\d+(\.\.[+-]?\d+)?$`)

// escapeNegativeNumbers inserts "--" before the first negative number so the
// flag parser treats it as an argument. Args are returned unchanged when a
// "--" already precedes it or when a flag follows it.
func escapeNegativeNumbers(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if !negativeNumberPattern.MatchString(arg) {
			continue
		}
		for _, rest := range args[i+1:] {
			if strings.HasPrefix(rest, "-") && !negativeNumberPattern.MatchString(rest) {
				return args
			}
		}
		escaped := make([]string, 0, len(args)+1)
		escaped = append(escaped, args[:i]...)
		escaped = append(escaped, "--")
		return append(escaped, args[i:]...)
	}
	return args
}

var cpuProfile *os.File

func setup(cmd *cobra.Command, cfg *Config) error {
	if err := applyConfigFile(cmd, cfg); err != nil {
		return errWithCode(err, exitError)
	}

	// Disable logger unless verbose flag is set.
	slog.SetDefault(slog.New(slog.DiscardHandler))
	if cfg.Verbose {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
		if cfg.JSON {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
	}

	if !cfg.Profile {
		return nil
	}

	// Start CPU profiling.
	var err error
	cpuProfile, err = os.Create("cpu.prof")
	if err != nil {
		return fmt.Errorf("creating cpu.prof: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuProfile); err != nil {
		_ = cpuProfile.Close()
		cpuProfile = nil
		return fmt.Errorf("starting CPU profile: %w", err)
	}
	slog.Info("cpu profiling started", "file", "cpu.prof")
	return nil
}

// applyConfigFile fills every setting whose flag was not given explicitly
// from the YAML config file.
func applyConfigFile(cmd *cobra.Command, cfg *Config) error {
	file, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("verbose") && file.Verbose {
		cfg.Verbose = true
	}
	if !flags.Changed("json") && file.JSON {
		cfg.JSON = true
	}
	if flags.Lookup("op") != nil && !flags.Changed("op") && file.Op != "" {
		cfg.Op = file.Op
	}
	if flags.Lookup("workers") != nil && !flags.Changed("workers") && file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	return nil
}

func teardown() error {
	if cpuProfile == nil {
		return nil
	}

	// Stop CPU profiling and close file.
	pprof.StopCPUProfile()
	defer func() {
		_ = cpuProfile.Close()
		cpuProfile = nil
	}()
	slog.Info("cpu profiling stopped", "file", "cpu.prof")

	// Write memory profile.
	memFile, err := os.Create("mem.prof")
	if err != nil {
		return fmt.Errorf("creating mem.prof: %w", err)
	}
	defer memFile.Close()
	runtime.GC() // Get up-to-date statistics
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("writing memory profile: %w", err)
	}
	slog.Info("memory profiling completed", "file", "mem.prof")
	return nil
}

// exitCodeFor maps evaluated results to the process outcome: per-input
// failures are errors, a negative verdict is a finding.
func exitCodeFor(op batch.Op, results []batch.Result) error {
	stats := batch.Summary(results)
	if stats.Failed > 0 {
		return errWithCode(fmt.Errorf("%d of %d inputs failed", stats.Failed, stats.Total), exitError)
	}

	for _, r := range results {
		switch {
		case op == batch.OpIsPrime && !r.Prime:
			return errWithCode(nil, exitNegative)
		case op == batch.OpCircular && !r.Circular:
			return errWithCode(nil, exitNegative)
		}
	}
	return nil
}

func errWithCode(err error, code int) error {
	return &codedError{err: err, code: code}
}

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e *codedError) Unwrap() error {
	return e.err
}
