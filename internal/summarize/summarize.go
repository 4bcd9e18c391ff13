// Package summarize turns retrieved search text into a grounded,
// patient-friendly summary.
package summarize

import (
	"context"
	"fmt"

	"github.com/healthaibot/healthbot/internal/llm"
	"github.com/healthaibot/healthbot/internal/search"
)

// InsufficientSummary is the sentence the model is told to emit when it
// cannot follow the formatting rules. It also stands in for empty output.
const InsufficientSummary = "The search results are insufficient to produce a compliant summary."

// MissingKeySummary replaces the summary when search ran without a Tavily key.
const MissingKeySummary = "Search unavailable because Tavily API key is missing. " +
	"Set TAVILY_API_KEY and restart to generate an evidence-based summary."

// Config holds summary generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for summary generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

// Summary is the outcome of one summarize step.
type Summary struct {
	// Text is what the user sees: model output or a placeholder.
	Text string

	// Placeholder is set when Text did not come from the model.
	Placeholder bool
}

// Summarizer produces summaries with an LLM.
type Summarizer struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Summarizer.
func New(provider llm.Provider, cfg Config) *Summarizer {
	return &Summarizer{provider: provider, cfg: cfg}
}

// Summarize condenses retrieved text about topic, emphasizing focus when set.
// Search sentinels and empty text are answered with a placeholder and no
// model call. A model failure also yields a placeholder, returned together
// with the error.
func (s *Summarizer) Summarize(ctx context.Context, topic, focus, retrieved string) (Summary, error) {
	if ph, ok := placeholderFor(topic, retrieved); ok {
		return Summary{Text: ph, Placeholder: true}, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeSummary)

	req := llm.UserPrompt(systemPrompt, buildPrompt(retrieved, focus))
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Summary{Text: fmt.Sprintf("Summary unavailable for %s: %v", topic, err), Placeholder: true},
			fmt.Errorf("summarize %q: %w", topic, err)
	}

	text := resp.Text()
	if text == "" {
		return Summary{Text: InsufficientSummary, Placeholder: true}, nil
	}
	return Summary{Text: text}, nil
}

func placeholderFor(topic, retrieved string) (string, bool) {
	switch {
	case search.IsMissingKeySentinel(retrieved):
		return MissingKeySummary, true
	case search.IsSentinel(retrieved):
		return fmt.Sprintf("Search data is unavailable for %s right now, so no summary could be produced. (%s)", topic, retrieved), true
	case retrieved == "":
		return fmt.Sprintf("Search data is unavailable for %s: no results were returned.", topic), true
	}
	return "", false
}
