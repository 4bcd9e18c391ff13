package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the number that orders events across tables.
// A search and the summary call that followed it live in different tables,
// so only the shared sequence says which came first.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the next sequence number. The increment runs before the read
// inside one transaction, so the write lock is held while reading and two
// processes sharing the file never see the same value.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx, err := sc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer tx.Rollback()

	b := entsql.Dialect(dialect.SQLite)
	upd, updArgs := b.Update(sequenceTable).Add("next_val", 1).Where(entsql.EQ("id", 1)).Query()
	if _, err := tx.ExecContext(ctx, upd, updArgs...); err != nil {
		return 0, fmt.Errorf("bump sequence: %w", err)
	}

	sel, selArgs := b.Select("next_val").From(entsql.Table(sequenceTable)).Where(entsql.EQ("id", 1)).Query()
	var next int64
	if err := tx.QueryRowContext(ctx, sel, selArgs...).Scan(&next); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return next - 1, nil
}
