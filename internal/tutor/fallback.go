package tutor

// Fixed replies used whenever the LLM cannot produce one.
const (
	FallbackHint = "Try looking at the numbers carefully and decide which operation to use first."

	// FallbackHintGeneric is used when the request itself could not be read.
	FallbackHintGeneric = "Think carefully about the numbers and operation involved."

	FallbackStep = "Break the problem into smaller parts and solve each step carefully."

	FallbackFeedbackCorrect   = "Excellent work! You solved the problem correctly. Your understanding of this math concept is really growing!"
	FallbackFeedbackIncorrect = "Good attempt! Let's think about this differently. Remember to carefully read the problem and check each step of your work."
)

// FallbackSteps returns the single-step fallback solution.
func FallbackSteps() []string {
	return []string{FallbackStep}
}

// FallbackFeedback picks the fallback feedback for the verdict.
func FallbackFeedback(isCorrect bool) string {
	if isCorrect {
		return FallbackFeedbackCorrect
	}
	return FallbackFeedbackIncorrect
}
