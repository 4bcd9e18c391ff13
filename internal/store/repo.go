package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// SearchEventData captures one call to the search backend.
type SearchEventData struct {
	SessionID    string
	Backend      string
	Query        string
	ResultCount  int
	ResultChars  int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SearchEvent is a stored search request event.
type SearchEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SearchEventData
}

// Session lifecycle actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData marks the start or end of an interactive session. The
// counters and grades are only meaningful on the end event.
type SessionEventData struct {
	SessionID     string
	Action        string
	Model         string
	TopicsStarted int
	QuizzesTaken  int
	Grades        string // comma-separated letters in quiz order
	DurationSecs  int
}

// SessionEvent is a stored session lifecycle event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to telemetry events. The LLM and search
// middlewares depend on this, not on the concrete store.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSearchRequest records a search backend call.
	AppendSearchRequest(ctx context.Context, data SearchEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
}

var _ EventRepo = (*Events)(nil)
