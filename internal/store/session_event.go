package store

import (
	"context"
	"fmt"
)

var sessionEventColumns = []string{
	"action", "model", "topics_started", "quizzes_taken", "grades", "duration_secs",
}

func (e *Events) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := e.insert(ctx, sessionTable, data.SessionID, sessionEventColumns, []any{
		data.Action,
		data.Model,
		data.TopicsStarted,
		data.QuizzesTaken,
		data.Grades,
		data.DurationSecs,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// QuerySessionEvents returns session lifecycle events, newest first.
func (e *Events) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	query, args := selectEvents(sessionTable, opts, sessionEventColumns...).Query()
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var ev SessionEvent
		err := rows.Scan(
			&ev.ID, &ev.Sequence, &ev.Timestamp, &ev.SessionID,
			&ev.Action, &ev.Model, &ev.TopicsStarted, &ev.QuizzesTaken,
			&ev.Grades, &ev.DurationSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
