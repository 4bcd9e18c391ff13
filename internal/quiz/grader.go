package quiz

import (
	"context"
	"fmt"

	"github.com/healthaibot/healthbot/internal/llm"
)

// UnavailableJustification accompanies the F given when grading failed.
const UnavailableJustification = "Grading was unavailable, so the answer could not be checked against the summary."

// Grader grades a free-text answer against the summary.
type Grader struct {
	provider llm.Provider
	cfg      Config
}

// NewGrader creates an answer grader.
func NewGrader(provider llm.Provider, cfg Config) *Grader {
	return &Grader{provider: provider, cfg: cfg}
}

// Grade asks the model for a letter grade and justification. On failure it
// returns an F with UnavailableJustification together with the error.
func (g *Grader) Grade(ctx context.Context, summary, question, answer string) (Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGrading)

	req := llm.UserPrompt(gradingSystemPrompt, buildGradingPrompt(summary, question, answer))
	req.MaxTokens = g.cfg.GradingMaxTokens
	req.Temperature = g.cfg.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Result{Grade: GradeF, Justification: UnavailableJustification}, fmt.Errorf("grading: %w", err)
	}

	return ExtractGrade(resp.Text()), nil
}
