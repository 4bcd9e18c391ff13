package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthaibot/healthbot/internal/llm"
)

// FallbackQuestion is asked when the model could not produce one.
const FallbackQuestion = "What is one key point from the summary you just read?"

// Question is the outcome of one generation attempt.
type Question struct {
	// Text is always a usable question ending in "?".
	Text string

	// Raw is the model output before extraction.
	Raw string

	// Discarded holds extra questions the model produced and that were dropped.
	Discarded []string

	// Fallback is set when Text is FallbackQuestion.
	Fallback bool
}

// Generator creates one comprehension question per call.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a question generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Create asks the model for a question about summary that differs from
// previous. The returned Question is always usable; a non-nil error explains
// why the fallback question was used.
func (g *Generator) Create(ctx context.Context, summary string, previous []string) (Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.UserPrompt(questionSystemPrompt, buildQuestionPrompt(summary, previous, g.cfg.MaxPrevious))
	req.MaxTokens = g.cfg.QuestionMaxTokens
	req.Temperature = g.cfg.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Question{Text: FallbackQuestion, Fallback: true}, fmt.Errorf("quiz generation: %w", err)
	}

	raw := resp.Text()
	text, discarded := ExtractQuestion(raw)
	if !hasContent(text) {
		return Question{Text: FallbackQuestion, Raw: raw, Discarded: discarded, Fallback: true},
			fmt.Errorf("quiz generation: no question in model output")
	}

	return Question{Text: text, Raw: raw, Discarded: discarded}, nil
}

// hasContent reports whether q is more than a bare question mark.
func hasContent(q string) bool {
	return strings.TrimSpace(strings.TrimSuffix(q, "?")) != ""
}
