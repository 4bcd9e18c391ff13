package session

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/healthaibot/healthbot/internal/quiz"
	"github.com/healthaibot/healthbot/internal/store"
)

// Recap totals what happened in a session.
type Recap struct {
	Duration      time.Duration
	TopicsStarted int
	QuizzesTaken  int
	Grades        []quiz.Grade
}

// BuildRecap creates a Recap from the session state.
func BuildRecap(st State, elapsed time.Duration) Recap {
	return Recap{
		Duration:      elapsed,
		TopicsStarted: st.TopicsStarted,
		QuizzesTaken:  st.QuizzesTaken,
		Grades:        st.Grades,
	}
}

// EventData converts the recap into a session lifecycle event.
func (r Recap) EventData(sessionID, action, model string) store.SessionEventData {
	grades := lo.Map(r.Grades, func(g quiz.Grade, _ int) string { return string(g) })
	return store.SessionEventData{
		SessionID:     sessionID,
		Action:        action,
		Model:         model,
		TopicsStarted: r.TopicsStarted,
		QuizzesTaken:  r.QuizzesTaken,
		Grades:        strings.Join(grades, ","),
		DurationSecs:  int(r.Duration.Seconds()),
	}
}
