package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseNext_Linear(t *testing.T) {
	order := []Phase{
		PhaseAcquireTopic, PhaseAcquireFocus, PhaseRetrieve, PhaseSummarize,
		PhasePresentSummary, PhaseComprehensionGate, PhaseCreateQuiz,
		PhasePresentQuiz, PhaseGetAnswer, PhaseGradeQuiz, PhasePresentFeedback,
	}
	for i := 0; i < len(order)-1; i++ {
		assert.Equal(t, order[i+1], order[i].Next(ChoiceNone), "after %s", order[i])
	}
}

func TestPhaseNext_Feedback(t *testing.T) {
	tests := []struct {
		choice Choice
		want   Phase
	}{
		{ChoiceQuiz, PhaseCreateQuiz},
		{ChoiceNew, PhaseAcquireTopic},
		{ChoiceExit, PhaseExit},
		{ChoiceNone, PhasePresentFeedback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhasePresentFeedback.Next(tt.choice), "choice %q", tt.choice)
	}
	assert.Equal(t, PhaseExit, PhaseExit.Next(ChoiceQuiz))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "AcquireTopic", PhaseAcquireTopic.String())
	assert.Equal(t, "PresentFeedback", PhasePresentFeedback.String())
	assert.Equal(t, "Exit", PhaseExit.String())
	assert.Equal(t, "Phase(99)", Phase(99).String())
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in     string
		want   Choice
		wantOK bool
	}{
		{"quiz", ChoiceQuiz, true},
		{"  NEW ", ChoiceNew, true},
		{"Exit", ChoiceExit, true},
		{"", ChoiceNone, false},
		{"q", ChoiceNone, false},
		{"quit", ChoiceNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseChoice(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestResetTopic(t *testing.T) {
	st := State{
		SessionID:         "s1",
		Topic:             "flu",
		Focus:             "symptoms",
		RetrievedText:     "text",
		Summary:           "summary",
		QuizQuestion:      "q?",
		QuizAnswer:        "a",
		Grade:             "B",
		Justification:     "ok",
		PreviousQuestions: []string{"q?"},
		Log:               []LogEntry{{Action: ActionTopicSelection}},
		Choice:            ChoiceNew,
		TopicsStarted:     1,
		QuizzesTaken:      1,
	}

	got := st.resetTopic()
	assert.Equal(t, State{
		SessionID:     "s1",
		Log:           []LogEntry{{Action: ActionTopicSelection}},
		TopicsStarted: 1,
		QuizzesTaken:  1,
	}, got)
	assert.Equal(t, "flu", st.Topic, "original value is untouched")
}
