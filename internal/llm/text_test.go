package llm

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"final_answer\":42}\n```", `{"final_answer":42}`},
		{"bare fence", "```\n{\"final_answer\":42}\n```", `{"final_answer":42}`},
		{"upper info string", "```JSON\n[\"a\"]\n```", `["a"]`},
		{"no fence", "  {\"final_answer\":42}\n", `{"final_answer":42}`},
		{"single line fence", "```json{\"a\":1}```", `{"a":1}`},
		{"fence without info", "```{\"a\":1}\n```", `{"a":1}`},
		{"plain text", "Add the two numbers.", "Add the two numbers."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
