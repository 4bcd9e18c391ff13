package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	llmRequestTable    = "llm_request_events"
	searchRequestTable = "search_request_events"
	sessionTable       = "session_events"
	sequenceTable      = "global_sequence"
)

// eventColumns returns the columns every event table starts with: the row
// id, the global sequence and the UTC timestamp, followed by the session the
// event belongs to.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString, Default: ""},
	}
}

func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := append(eventColumns(), extra...)
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
			{Name: name + "_session_id", Columns: []*schema.Column{cols[3]}},
		},
	}
	return t
}

var (
	llmRequestEventsTable = eventTable(llmRequestTable,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)

	searchRequestEventsTable = eventTable(searchRequestTable,
		&schema.Column{Name: "backend", Type: field.TypeString},
		&schema.Column{Name: "query", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "result_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "result_chars", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
	)

	sessionEventsTable = eventTable(sessionTable,
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "topics_started", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "quizzes_taken", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "grades", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)

	// tables are the event tables Reset clears.
	tables = []*schema.Table{
		llmRequestEventsTable,
		searchRequestEventsTable,
		sessionEventsTable,
	}

	// globalSequenceTable holds a single row with the next sequence value.
	// It survives Reset.
	sequenceID          = &schema.Column{Name: "id", Type: field.TypeInt}
	globalSequenceTable = &schema.Table{
		Name: sequenceTable,
		Columns: []*schema.Column{
			sequenceID,
			{Name: "next_val", Type: field.TypeInt64, Default: 1},
		},
		PrimaryKey: []*schema.Column{sequenceID},
	}
)
