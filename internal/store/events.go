package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Events is the append-and-query view over the event tables.
type Events struct {
	db  *sql.DB
	seq *sequenceCounter
}

// insert writes one event row, stamping the shared columns. An empty
// sessionID falls back to the one attached to ctx.
func (e *Events) insert(ctx context.Context, table, sessionID string, cols []string, vals []any) error {
	seqNum, err := e.seq.Next(ctx)
	if err != nil {
		return err
	}
	if sessionID == "" {
		sessionID = SessionIDFrom(ctx)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(append([]string{"sequence", "timestamp", "session_id"}, cols...)...).
		Values(append([]any{seqNum, time.Now().UTC(), sessionID}, vals...)...).
		Query()
	if _, err := e.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over table honoring opts.
func selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	s := entsql.Dialect(dialect.SQLite).
		Select(append([]string{"id", "sequence", "timestamp", "session_id"}, cols...)...).
		From(entsql.Table(table))

	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.SessionID != "" {
		s.Where(entsql.EQ("session_id", opts.SessionID))
	}

	s.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s
}

// Reset deletes every recorded event and returns how many rows went away.
// The global sequence keeps counting so old exports never collide.
func (e *Events) Reset(ctx context.Context) (int64, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, t := range tables {
		query, args := entsql.Dialect(dialect.SQLite).Delete(t.Name).Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("clear %s: %w", t.Name, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reset: %w", err)
	}
	return total, nil
}
