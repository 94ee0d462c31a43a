package problemgen

// Canned problem served whenever generation fails.
const (
	FallbackProblemText         = "A farmer has 25 chickens and 17 ducks. How many birds does he have in total?"
	FallbackAnswer      float64 = 42
)

// FallbackProblem returns the canned problem tagged with the requested
// difficulty and type.
func FallbackProblem(input GenerateInput) *Problem {
	return &Problem{
		Text:        FallbackProblemText,
		Answer:      FallbackAnswer,
		Difficulty:  input.Difficulty,
		ProblemType: input.ProblemType,
		Fallback:    true,
	}
}
