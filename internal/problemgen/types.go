package problemgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for difficulty or problem type values outside
// their enums.
var ErrInvalidInput = errors.New("invalid input")

// Difficulty is the requested difficulty of a generated problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyRandom Difficulty = "random"
)

// ProblemType is the arithmetic operation a problem should exercise.
type ProblemType string

const (
	TypeAddition       ProblemType = "addition"
	TypeSubtraction    ProblemType = "subtraction"
	TypeMultiplication ProblemType = "multiplication"
	TypeDivision       ProblemType = "division"
	TypeRandom         ProblemType = "random"
)

// ParseDifficulty normalizes s into a Difficulty. Empty input means random;
// matching is case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyRandom, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyRandom:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, s)
	}
}

// ParseProblemType normalizes s into a ProblemType. Empty input means
// random; matching is case-insensitive.
func ParseProblemType(s string) (ProblemType, error) {
	switch p := ProblemType(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return TypeRandom, nil
	case TypeAddition, TypeSubtraction, TypeMultiplication, TypeDivision, TypeRandom:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown problem type %q", ErrInvalidInput, s)
	}
}

// Problem is a generated word problem with its numeric answer.
type Problem struct {
	// Text is the word problem shown to the student.
	Text string

	// Answer is the expected final answer.
	Answer float64

	Difficulty  Difficulty
	ProblemType ProblemType

	// Fallback is set when the canned problem was served instead of a
	// generated one.
	Fallback bool
}

// GenerateInput holds the request parameters for a new problem.
type GenerateInput struct {
	Difficulty  Difficulty
	ProblemType ProblemType
}
