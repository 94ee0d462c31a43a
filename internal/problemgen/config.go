package problemgen

// Config tunes the LLMGenerator.
type Config struct {
	// Validators run in order on every parsed problem; the first failure
	// rejects it and the service falls back to the canned problem.
	Validators []Validator

	MaxTokens int

	// High temperature keeps consecutive problems from repeating the same
	// story with different numbers.
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}, &WholeNumberValidator{}},
		MaxTokens:   512,
		Temperature: 0.9,
	}
}
