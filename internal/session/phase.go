package session

import (
	"fmt"
	"strings"
)

// Phase is a step of the session workflow.
type Phase int

const (
	PhaseAcquireTopic Phase = iota
	PhaseAcquireFocus
	PhaseRetrieve
	PhaseSummarize
	PhasePresentSummary
	PhaseComprehensionGate
	PhaseCreateQuiz
	PhasePresentQuiz
	PhaseGetAnswer
	PhaseGradeQuiz
	PhasePresentFeedback
	PhaseExit
)

var phaseNames = [...]string{
	"AcquireTopic",
	"AcquireFocus",
	"Retrieve",
	"Summarize",
	"PresentSummary",
	"ComprehensionGate",
	"CreateQuiz",
	"PresentQuiz",
	"GetAnswer",
	"GradeQuiz",
	"PresentFeedback",
	"Exit",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Next returns the phase that follows p. Only PresentFeedback branches, on
// the user's choice; ChoiceNone there means the choice is still pending.
func (p Phase) Next(c Choice) Phase {
	switch p {
	case PhasePresentFeedback:
		switch c {
		case ChoiceQuiz:
			return PhaseCreateQuiz
		case ChoiceNew:
			return PhaseAcquireTopic
		case ChoiceExit:
			return PhaseExit
		}
		return PhasePresentFeedback
	case PhaseExit:
		return PhaseExit
	}
	return p + 1
}

// ParseChoice maps free-text input to a Choice, ignoring case and
// surrounding space.
func ParseChoice(input string) (Choice, bool) {
	switch c := Choice(strings.ToLower(strings.TrimSpace(input))); c {
	case ChoiceQuiz, ChoiceNew, ChoiceExit:
		return c, true
	}
	return ChoiceNone, false
}
