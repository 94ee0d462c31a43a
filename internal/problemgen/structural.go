package problemgen

import (
	"math"
	"strings"
)

const maxProblemTextLen = 1000

// StructuralValidator checks that the problem text is present and within
// length limits and that the answer is a finite number.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	if strings.TrimSpace(p.Text) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem_text is empty",
		}
	}
	if len(p.Text) > maxProblemTextLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem_text exceeds 1000 characters",
		}
	}
	if math.IsNaN(p.Answer) || math.IsInf(p.Answer, 0) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "final_answer is not a finite number",
		}
	}
	return nil
}

// WholeNumberValidator rejects answers that are negative or have a
// fractional part, since problems are limited to whole numbers.
type WholeNumberValidator struct{}

func (v *WholeNumberValidator) Name() string { return "whole-number" }

func (v *WholeNumberValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	if p.Answer < 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "final_answer is negative",
		}
	}
	if p.Answer != math.Trunc(p.Answer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "final_answer is not a whole number",
		}
	}
	return nil
}
