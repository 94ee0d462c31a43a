package problemgen

import "github.com/abhisek/mathbuddy/internal/llm"

// ProblemSchema defines the JSON shape expected from problem generation.
var ProblemSchema = &llm.Schema{
	Name:        "math-word-problem",
	Description: "A single arithmetic word problem with its numeric answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The word problem shown to the student",
			},
			"final_answer": map[string]any{
				"type":        "number",
				"description": "The single correct numerical answer",
			},
		},
		"required": []any{"problem_text", "final_answer"},
	},
}
