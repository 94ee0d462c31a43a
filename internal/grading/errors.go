package grading

import "errors"

// Sentinel errors returned by Submit. Callers classify with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("problem session not found")
	ErrStorage      = errors.New("storage failure")
)
