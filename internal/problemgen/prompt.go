package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write math word problems for Primary 5 students (10-11 years old).

The problem must:
- Involve one or more of these operations: addition, subtraction, multiplication, division.
- Use only whole numbers. Avoid fractions, decimals, or negative numbers.
- Be engaging and relatable to children.
- Have a clear question with only one correct numerical answer.
- Use simple, age-appropriate language (short sentences, clear vocabulary).
- Keep numbers reasonably small (1-100) for easy calculation.

Return ONLY valid JSON in this exact format, with no text outside the JSON:
{"problem_text": "The math word problem here...", "final_answer": 42}

Example:
{"problem_text": "Sarah has 15 stickers. She gives 3 stickers to each of her 4 friends. How many stickers does she have left?", "final_answer": 3}`

// buildUserMessage describes the requested difficulty and operation.
func buildUserMessage(input GenerateInput) string {
	var b strings.Builder

	b.WriteString("Generate one math word problem.\n")
	fmt.Fprintf(&b, "Difficulty level: %s\n", difficultyLabel(input.Difficulty))
	fmt.Fprintf(&b, "Operation type: %s\n", problemTypeLabel(input.ProblemType))

	return b.String()
}

func difficultyLabel(d Difficulty) string {
	if d == DifficultyRandom || d == "" {
		return "choose randomly between Easy, Medium, or Hard"
	}
	return string(d)
}

func problemTypeLabel(p ProblemType) string {
	if p == TypeRandom || p == "" {
		return "choose randomly from addition, subtraction, multiplication, division"
	}
	return string(p)
}
