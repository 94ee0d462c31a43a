package grading

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tolerance is the absolute difference under which an answer is correct.
const Tolerance = 0.001

// decimalPattern accepts an optional sign, digits with an optional
// fraction, and an optional exponent. Hex floats, NaN and Inf never match.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseAnswer parses a submitted answer as a finite decimal number.
// Surrounding whitespace is ignored.
func ParseAnswer(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty answer", ErrInvalidInput)
	}
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidInput, s)
	}
	return v, nil
}

// IsCorrect reports whether the answer lies within Tolerance of the
// expected value.
func IsCorrect(answer, expected float64) bool {
	return math.Abs(answer-expected) < Tolerance
}
