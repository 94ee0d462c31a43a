package tutor

// ProblemContext identifies the problem a hint or solution is for.
type ProblemContext struct {
	ProblemText string
	ProblemType string
	Difficulty  string
}

// FeedbackInput describes a graded answer.
type FeedbackInput struct {
	ProblemText   string
	UserAnswer    float64
	CorrectAnswer float64
	IsCorrect     bool
}
