package problemgen

import "context"

// Generator produces word problems using an LLM provider.
type Generator interface {
	// Generate produces a single problem for the given input.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Problem, error)
}
