// Package app wires configuration, collaborators and the console into one
// interactive session.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/healthaibot/healthbot/internal/config"
	"github.com/healthaibot/healthbot/internal/console"
	"github.com/healthaibot/healthbot/internal/llm"
	"github.com/healthaibot/healthbot/internal/logging"
	"github.com/healthaibot/healthbot/internal/quiz"
	"github.com/healthaibot/healthbot/internal/search"
	"github.com/healthaibot/healthbot/internal/session"
	"github.com/healthaibot/healthbot/internal/store"
	"github.com/healthaibot/healthbot/internal/summarize"
)

// Banner is printed when a session starts.
const Banner = "HealthBot: learn about a health topic from trusted sources, then test yourself."

// Console is the terminal a session runs on. *console.Console satisfies it.
type Console interface {
	session.Console
	Title(s string)
}

// Options holds the dependencies for a run. Only Config is required; the
// rest are built from it when nil.
type Options struct {
	Config *config.Config

	Console  Console
	Provider llm.Provider
	Searcher search.Searcher

	// Events records LLM, search and session telemetry. Optional.
	Events store.EventRepo
	Logger *slog.Logger

	// SessionID defaults to a random UUID.
	SessionID string
}

// Run executes one session and returns its final state.
func Run(ctx context.Context, opts Options) (session.State, error) {
	if opts.Config == nil {
		return session.State{}, fmt.Errorf("app: config is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Console == nil {
		con := console.Stdio(opts.Config.NoColor)
		defer con.Close()
		opts.Console = con
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}

	opts.Console.Title(Banner)

	provider := opts.Provider
	if provider == nil {
		provider = buildProvider(ctx, opts)
	}

	searcher := opts.Searcher
	if searcher == nil {
		searcher = search.NewTavily(opts.Config.Search())
	}
	searcher = search.WithLogging(searcher, "tavily", opts.Events, opts.Logger)

	temperature := opts.Config.Temperature
	sumCfg := summarize.DefaultConfig()
	sumCfg.Temperature = temperature
	quizCfg := quiz.DefaultConfig()
	quizCfg.Temperature = temperature

	seq := session.New(session.Deps{
		Console:    opts.Console,
		Searcher:   searcher,
		Summarizer: summarize.New(provider, sumCfg),
		Generator:  quiz.NewGenerator(provider, quizCfg),
		Grader:     quiz.NewGrader(provider, quizCfg),
		Events:     opts.Events,
		Model:      provider.ModelID(),
		Logger:     opts.Logger.With("session_id", opts.SessionID),
	})

	opts.Logger.Info("session starting", "session_id", opts.SessionID, "model", provider.ModelID())
	return seq.Run(ctx, session.NewState(opts.SessionID))
}

// buildProvider creates the configured provider. When it cannot be built
// the session still runs, on offline canned answers.
func buildProvider(ctx context.Context, opts Options) llm.Provider {
	cfg := opts.Config.LLM()
	p, err := llm.NewProvider(ctx, cfg, opts.Events, opts.Logger)
	if err == nil {
		return p
	}

	opts.Logger.Warn("LLM provider not configured", "provider", cfg.Provider, "error", err)
	opts.Console.Hint(fmt.Sprintf("LLM provider not configured (%v). Using offline answers.", err))

	cfg.Provider = llm.ProviderMock
	p, err = llm.NewProvider(ctx, cfg, opts.Events, opts.Logger)
	if err != nil {
		// mock needs no settings, so this only fails on a bad temperature
		return llm.NewOfflineProvider()
	}
	return p
}
