package tutor

import "github.com/abhisek/mathbuddy/internal/llm"

// StepsSchema describes a solution as an ordered list of step strings.
var StepsSchema = &llm.Schema{
	Name:        "solution-steps",
	Description: "Ordered solution steps, one instruction per string",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "string",
		},
	},
}
