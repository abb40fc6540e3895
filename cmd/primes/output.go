package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dbtrnl/primes/pkg/batch"
)

func writeResults(w io.Writer, cfg *Config, op batch.Op, results []batch.Result) error {
	var output string
	var err error

	if cfg.JSON {
		output, err = formatJSONOutput(op, results)
	} else {
		output = formatTextOutput(op, results, cfg)
	}

	if err != nil {
		return err
	}

	_, err = io.WriteString(w, output)
	return err
}

func formatJSONOutput(op batch.Op, results []batch.Result) (string, error) {
	items := make([]jResult, 0, len(results))
	for _, r := range results {
		item := jResult{Input: r.Input, Prime: r.Prime}
		switch op {
		case batch.OpLargestFactor:
			if r.Err == nil {
				item.LargestFactor = &r.LargestFactor
			}
		case batch.OpFactors:
			item.Factors = r.Factors
		case batch.OpCircular:
			if r.Err == nil {
				item.Circular = &r.Circular
			}
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		items = append(items, item)
	}

	data, err := json.MarshalIndent(jOutput{
		Op:        string(op),
		Results:   items,
		Stats:     batch.Summary(results),
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling json output: %w", err)
	}
	return string(data) + "\n", nil
}

func formatTextOutput(op batch.Op, results []batch.Result, cfg *Config) string {
	var output strings.Builder

	for _, r := range results {
		// Format: input: verdict
		if r.Err != nil {
			output.WriteString(fmt.Sprintf("%d: error: %v\n", r.Input, r.Err))
			continue
		}
		switch op {
		case batch.OpIsPrime:
			output.WriteString(fmt.Sprintf("%d: %s\n", r.Input, verdict(r.Prime, "prime", "composite")))
		case batch.OpLargestFactor:
			output.WriteString(fmt.Sprintf("%d: %d\n", r.Input, r.LargestFactor))
		case batch.OpFactors:
			output.WriteString(fmt.Sprintf("%d: %s\n", r.Input, joinInts(r.Factors, " ")))
		case batch.OpCircular:
			output.WriteString(fmt.Sprintf("%d: %s\n", r.Input, verdict(r.Circular, "circular", "not circular")))
		}
	}

	if cfg.Verbose {
		stats := batch.Summary(results)
		output.WriteString(fmt.Sprintf("\ntotal: %d, prime: %d, failed: %d\n", stats.Total, stats.Prime, stats.Failed))
	}
	return output.String()
}

func writeList(w io.Writer, cfg *Config, primes []int64) error {
	if !cfg.JSON {
		if len(primes) == 0 {
			return nil
		}
		_, err := io.WriteString(w, joinInts(primes, "\n")+"\n")
		return err
	}

	data, err := json.MarshalIndent(jList{
		Primes:  primes,
		Count:   len(primes),
		Version: version,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling json output: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func verdict(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func joinInts(nums []int64, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, sep)
}

type jOutput struct {
	Op        string      `json:"op"`
	Results   []jResult   `json:"results"`
	Stats     batch.Stats `json:"stats"`
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
}

type jResult struct {
	Input         int64   `json:"input"`
	Prime         bool    `json:"prime"`
	LargestFactor *int64  `json:"largest_factor,omitempty"`
	Factors       []int64 `json:"factors,omitempty"`
	Circular      *bool   `json:"circular,omitempty"`
	Error         string  `json:"error,omitempty"`
}

type jList struct {
	Primes  []int64 `json:"primes"`
	Count   int     `json:"count"`
	Version string  `json:"version"`
}
