package tutor

// Config holds generation settings for the tutoring prompts.
type Config struct {
	HintMaxTokens     int
	StepsMaxTokens    int
	FeedbackMaxTokens int
	Temperature       float64
}

// DefaultConfig returns sensible defaults for tutoring prompts.
func DefaultConfig() Config {
	return Config{
		HintMaxTokens:     256,
		StepsMaxTokens:    768,
		FeedbackMaxTokens: 256,
		Temperature:       0.5,
	}
}
