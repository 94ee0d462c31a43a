package tutor

import (
	"bytes"
	"strconv"
	"text/template"
)

const tutorSystemPrompt = `You are a patient, encouraging math tutor helping a Primary 5 student (10-11 years old). Use simple, clear language and short sentences.`

var hintTemplate = template.Must(template.New("hint").Parse(`Problem: "{{.ProblemText}}"
Operation: {{or .ProblemType "random"}}
Difficulty: {{or .Difficulty "random"}}

Provide a helpful hint, but do NOT give the answer.
- Be short (1-2 sentences).
- Encourage the student to think about the numbers and steps.
Return only the hint as plain text.`))

var stepsTemplate = template.Must(template.New("steps").Parse(`Problem: "{{.ProblemText}}"
Operation: {{or .ProblemType "random"}}
Difficulty: {{or .Difficulty "random"}}

Provide a step-by-step solution for this problem.
- Break the problem into small steps.
- Return only the steps as a JSON array of strings, one step per string.
- Do NOT provide extra commentary.`))

var feedbackTemplate = template.Must(template.New("feedback").Funcs(template.FuncMap{
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(`Provide encouraging, educational feedback for a student who {{if .IsCorrect}}correctly solved{{else}}attempted to solve{{end}} this math problem.

PROBLEM: "{{.ProblemText}}"
STUDENT'S ANSWER: {{num .UserAnswer}}
CORRECT ANSWER: {{num .CorrectAnswer}}
STUDENT WAS: {{if .IsCorrect}}CORRECT{{else}}INCORRECT{{end}}

Guidelines:
- Be supportive, positive, and age-appropriate.
- If incorrect: gently explain the mistake, suggest the right approach, and encourage trying again.
- If correct: offer specific praise and maybe extend the learning.
- Keep it brief: at most 2-3 sentences (about 150 characters).
- Focus on the student's thinking process, not just the final answer.
- Avoid lists, bullet points, quotes, or any extra formatting.

Return only the feedback text as plain text.`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
