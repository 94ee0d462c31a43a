package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mathbuddy/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// problemOutput is the raw LLM response before validation.
type problemOutput struct {
	ProblemText string  `json:"problem_text"`
	FinalAnswer float64 `json:"final_answer"`
}

// Generate produces a single problem for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeProblemGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	p, err := parseProblem(resp.Text())
	if err != nil {
		return nil, err
	}
	p.Difficulty = input.Difficulty
	p.ProblemType = input.ProblemType

	for _, v := range g.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return nil, verr
		}
	}

	return p, nil
}

// parseProblem strips code fences, checks the JSON against ProblemSchema
// and decodes it.
func parseProblem(text string) (*Problem, error) {
	raw := json.RawMessage(llm.StripCodeFences(text))
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("failed to parse LLM response: %w", llm.ErrEmptyResponse)
	}
	if err := llm.ValidateJSON(ProblemSchema, raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var out problemOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return &Problem{
		Text:   strings.TrimSpace(out.ProblemText),
		Answer: out.FinalAnswer,
	}, nil
}
