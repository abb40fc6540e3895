// Package batch evaluates prime operations over many inputs concurrently.
package batch

import (
	"fmt"
	"strings"
)

// Op names an operation the evaluator can apply to each input.
type Op string

const (
	OpIsPrime       Op = "is-prime"
	OpLargestFactor Op = "largest-factor"
	OpFactors       Op = "factors"
	OpCircular      Op = "circular"
)

// Ops lists every supported operation.
var Ops = []Op{OpIsPrime, OpLargestFactor, OpFactors, OpCircular}

// ParseOp converts a flag or config value into an Op.
func ParseOp(s string) (Op, error) {
	op := Op(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ops {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q (want one of %s)", s, joinOps())
}

func joinOps() string {
	names := make([]string, 0, len(Ops))
	for _, op := range Ops {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}

// Result holds the outcome of one operation applied to one input.
type Result struct {
	Input         int64   `json:"input"`
	Prime         bool    `json:"prime"`
	LargestFactor int64   `json:"largest_factor,omitempty"`
	Factors       []int64 `json:"factors,omitempty"`
	Circular      bool    `json:"circular,omitempty"`
	Err           error   `json:"-"`
}

// Stats summarizes a batch of results.
type Stats struct {
	Total  int `json:"total"`
	Prime  int `json:"prime"`
	Failed int `json:"failed"`
}

// Summary counts the results.
func Summary(results []Result) Stats {
	var s Stats
	for _, r := range results {
		s.Total++
		if r.Prime {
			s.Prime++
		}
		if r.Err != nil {
			s.Failed++
		}
	}
	return s
}
