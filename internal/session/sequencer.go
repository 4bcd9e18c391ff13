// Package session runs one interactive learning session: pick a topic,
// read a grounded summary, answer quiz questions, repeat or move on.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/healthaibot/healthbot/internal/console"
	"github.com/healthaibot/healthbot/internal/logging"
	"github.com/healthaibot/healthbot/internal/quiz"
	"github.com/healthaibot/healthbot/internal/search"
	"github.com/healthaibot/healthbot/internal/store"
	"github.com/healthaibot/healthbot/internal/summarize"
)

// Console is the user-facing terminal.
type Console interface {
	Prompt(ctx context.Context, label string) (string, error)
	Println(s string)
	Heading(s string)
	Block(s string)
	Hint(s string)
	Result(s string, tone console.Tone)
}

// Summarizer condenses retrieved text.
type Summarizer interface {
	Summarize(ctx context.Context, topic, focus, retrieved string) (summarize.Summary, error)
}

// QuestionGenerator writes one quiz question about a summary.
type QuestionGenerator interface {
	Create(ctx context.Context, summary string, previous []string) (quiz.Question, error)
}

// Grader grades an answer against a summary.
type Grader interface {
	Grade(ctx context.Context, summary, question, answer string) (quiz.Result, error)
}

// Deps are the collaborators a Sequencer drives.
type Deps struct {
	Console    Console
	Searcher   search.Searcher
	Summarizer Summarizer
	Generator  QuestionGenerator
	Grader     Grader

	// Events receives session start/end telemetry. Optional.
	Events store.EventRepo
	// Model is recorded on session events.
	Model  string
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Sequencer walks a State through the session phases.
type Sequencer struct {
	Deps
}

// New creates a Sequencer.
func New(deps Deps) *Sequencer {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Sequencer{Deps: deps}
}

// Run drives st from AcquireTopic until the user exits, input ends or ctx is
// cancelled, then prints the farewell. Neither collaborator failures nor
// unreadable input end the run abnormally; the returned error is always nil.
func (s *Sequencer) Run(ctx context.Context, st State) (State, error) {
	ctx = store.WithSessionID(ctx, st.SessionID)
	started := s.Now()
	s.recordSession(ctx, store.SessionStart, st, started)

	phase := PhaseAcquireTopic
	for phase != PhaseExit && ctx.Err() == nil {
		var err error
		st, err = s.step(ctx, phase, st)
		if err != nil {
			if endOfInput(err) {
				s.Logger.Debug("input ended", "phase", phase.String(), "error", err)
			} else {
				s.Logger.Warn("unreadable input, ending session", "phase", phase.String(), "error", err)
			}
			break
		}

		next := phase.Next(st.Choice)
		if phase == PhasePresentFeedback {
			if st.Choice == ChoiceNew {
				st = st.resetTopic()
			}
			st.Choice = ChoiceNone
		}
		phase = next
	}

	s.Console.Println(MsgFarewell)
	s.recordSession(context.WithoutCancel(ctx), store.SessionEnd, st, started)
	return st, nil
}

func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Sequencer) step(ctx context.Context, phase Phase, st State) (State, error) {
	switch phase {
	case PhaseAcquireTopic:
		return s.acquireTopic(ctx, st)
	case PhaseAcquireFocus:
		return s.acquireFocus(ctx, st)
	case PhaseRetrieve:
		return s.retrieve(ctx, st), nil
	case PhaseSummarize:
		return s.summarize(ctx, st), nil
	case PhasePresentSummary:
		return s.presentSummary(st), nil
	case PhaseComprehensionGate:
		return s.comprehensionGate(ctx, st)
	case PhaseCreateQuiz:
		return s.createQuiz(ctx, st), nil
	case PhasePresentQuiz:
		return s.presentQuiz(st), nil
	case PhaseGetAnswer:
		return s.getAnswer(ctx, st)
	case PhaseGradeQuiz:
		return s.gradeQuiz(ctx, st), nil
	case PhasePresentFeedback:
		return s.presentFeedback(ctx, st)
	}
	return st, fmt.Errorf("unknown phase %s", phase)
}

func (s *Sequencer) recordSession(ctx context.Context, action string, st State, started time.Time) {
	if s.Events == nil {
		return
	}
	data := BuildRecap(st, s.Now().Sub(started)).EventData(st.SessionID, action, s.Model)
	if err := s.Events.AppendSessionEvent(ctx, data); err != nil {
		s.Logger.Warn("failed to record session event", "action", action, "error", err)
	}
}
