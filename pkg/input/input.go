// Package input parses lists of integers from text.
//
// Numbers are separated by whitespace or commas. A line comment starts
// with '#' or '//'. An inclusive range is written as "a..b". Lines longer
// than MaxLineSize are rejected.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxRangeSize bounds how many values a single range may expand to.
	MaxRangeSize = 1_000_000

	// MaxLineSize bounds the length of a single input line.
	MaxLineSize = 16 << 20
)

// ErrSyntax is wrapped by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a malformed token.
type SyntaxError struct {
	Line  int
	Token string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", e.Line, e.Token, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

var (
	// commentPattern matches a '#' or '//' comment through end of line
	commentPattern = regexp.MustCompile(`(#|//).*$`)

	// separatorPattern splits tokens on runs of whitespace and commas
	separatorPattern = regexp.MustCompile(`[\s,]+`)

	// numberPattern matches an optionally signed decimal integer
	numberPattern = regexp.MustCompile(`^[+-]?\d+$`)

	// rangePattern matches an inclusive range like 10..20
	rangePattern = regexp.MustCompile(`^([+-]?\d+)\.\.([+-]?\d+)$`)
)

// Parse reads every integer from r in order of appearance.
func Parse(r io.Reader) ([]int64, error) {
	var numbers []int64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := commentPattern.ReplaceAllString(scanner.Text(), "")
		for _, token := range separatorPattern.Split(text, -1) {
			if token == "" {
				continue
			}
			values, err := parseToken(line, token)
			if err != nil {
				return nil, err
			}
			numbers = append(numbers, values...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return numbers, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]int64, error) {
	return Parse(strings.NewReader(s))
}

// ParseArgs parses command-line arguments, each holding one or more tokens.
func ParseArgs(args []string) ([]int64, error) {
	return ParseString(strings.Join(args, "\n"))
}

func parseToken(line int, token string) ([]int64, error) {
	if numberPattern.MatchString(token) {
		n, err := parseInt(line, token, token)
		if err != nil {
			return nil, err
		}
		return []int64{n}, nil
	}

	if matches := rangePattern.FindStringSubmatch(token); matches != nil {
		lo, err := parseInt(line, token, matches[1])
		if err != nil {
			return nil, err
		}
		hi, err := parseInt(line, token, matches[2])
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, &SyntaxError{Line: line, Token: token, Msg: "descending range"}
		}
		// hi-lo may overflow for ranges spanning most of int64; uint64 holds it.
		if uint64(hi-lo) >= MaxRangeSize {
			return nil, &SyntaxError{Line: line, Token: token, Msg: fmt.Sprintf("range exceeds %d values", MaxRangeSize)}
		}
		values := make([]int64, 0, hi-lo+1)
		for v := lo; ; v++ {
			values = append(values, v)
			if v == hi {
				break
			}
		}
		return values, nil
	}

	return nil, &SyntaxError{Line: line, Token: token, Msg: "not an integer or range"}
}

func parseInt(line int, token, digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &SyntaxError{Line: line, Token: token, Msg: "out of range for int64"}
	}
	return n, nil
}
