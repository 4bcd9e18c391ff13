package quiz

// Config holds quiz generation and grading settings.
type Config struct {
	QuestionMaxTokens int
	GradingMaxTokens  int
	Temperature       float64

	// MaxPrevious caps how many earlier questions are listed in the prompt.
	// Zero lists all of them.
	MaxPrevious int
}

// DefaultConfig returns sensible defaults for quiz generation and grading.
func DefaultConfig() Config {
	return Config{
		QuestionMaxTokens: 256,
		GradingMaxTokens:  256,
		Temperature:       0.3,
	}
}
