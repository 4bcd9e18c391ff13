package session

import (
	"time"

	"github.com/healthaibot/healthbot/internal/quiz"
)

// Role tags who produced a log entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Log actions recorded by the sequencer.
const (
	ActionTopicSelection     = "topic_selection"
	ActionToolCall           = "tool_call"
	ActionFocusSelection     = "focus_selection"
	ActionSearchComplete     = "search_complete"
	ActionSummarize          = "summarize_results"
	ActionSummarizeComplete  = "summarize_results_complete"
	ActionCreateQuiz         = "create_quiz"
	ActionQuizSanitizer      = "create_quiz_sanitizer"
	ActionQuizDuplicate      = "create_quiz_duplicate"
	ActionCreateQuizComplete = "create_quiz_complete"
	ActionAnswerSubmission   = "quiz_answer_submission"
	ActionGradeQuiz          = "grade_quiz"
	ActionGradeQuizComplete  = "grade_quiz_complete"
	ActionChoice             = "post_feedback_choice"
)

// LogEntry is one line of the conversation audit trail.
type LogEntry struct {
	Role    Role
	Content string
	Action  string
	Time    time.Time
	Meta    map[string]string
}

// Choice is the user's answer to "what next?" after feedback.
type Choice string

const (
	ChoiceNone Choice = ""
	ChoiceQuiz Choice = "quiz"
	ChoiceNew  Choice = "new"
	ChoiceExit Choice = "exit"
)

// State is the record threaded through every step of a session. Steps take
// it by value and hand back the updated copy.
type State struct {
	SessionID string

	Topic         string
	Focus         string // empty means no focus
	RetrievedText string // search text or a search sentinel
	Summary       string

	QuizQuestion      string
	QuizAnswer        string
	Grade             quiz.Grade // empty until graded
	Justification     string
	PreviousQuestions []string

	Log    []LogEntry
	Choice Choice

	TopicsStarted int
	QuizzesTaken  int
	Grades        []quiz.Grade
}

// NewState returns the initial state for a session.
func NewState(sessionID string) State {
	return State{SessionID: sessionID}
}

func (s State) record(at time.Time, role Role, action, content string, meta map[string]string) State {
	s.Log = append(s.Log, LogEntry{Role: role, Content: content, Action: action, Time: at, Meta: meta})
	return s
}

// resetTopic clears every topic-scoped field. The log and the session
// counters survive.
func (s State) resetTopic() State {
	s.Topic = ""
	s.Focus = ""
	s.RetrievedText = ""
	s.Summary = ""
	s.QuizQuestion = ""
	s.QuizAnswer = ""
	s.Grade = ""
	s.Justification = ""
	s.PreviousQuestions = nil
	s.Choice = ChoiceNone
	return s
}

// HasQuestion reports whether q was already asked on this topic.
func (s State) HasQuestion(q string) bool {
	for _, p := range s.PreviousQuestions {
		if p == q {
			return true
		}
	}
	return false
}
