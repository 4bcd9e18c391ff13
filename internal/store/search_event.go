package store

import (
	"context"
	"fmt"
)

var searchEventColumns = []string{
	"backend", "query", "result_count", "result_chars", "latency_ms", "success", "error_message",
}

func (e *Events) AppendSearchRequest(ctx context.Context, data SearchEventData) error {
	err := e.insert(ctx, searchRequestTable, data.SessionID, searchEventColumns, []any{
		data.Backend,
		data.Query,
		data.ResultCount,
		data.ResultChars,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
	})
	if err != nil {
		return fmt.Errorf("save search event: %w", err)
	}
	return nil
}

// QuerySearchEvents returns search events, newest first.
func (e *Events) QuerySearchEvents(ctx context.Context, opts QueryOpts) ([]SearchEvent, error) {
	query, args := selectEvents(searchRequestTable, opts, searchEventColumns...).Query()
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search events: %w", err)
	}
	defer rows.Close()

	var out []SearchEvent
	for rows.Next() {
		var ev SearchEvent
		err := rows.Scan(
			&ev.ID, &ev.Sequence, &ev.Timestamp, &ev.SessionID,
			&ev.Backend, &ev.Query, &ev.ResultCount, &ev.ResultChars,
			&ev.LatencyMs, &ev.Success, &ev.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan search event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
