package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the sequence numbers that order assessment
// events and LLM events in one timeline. The row lives in SQLite so the
// numbering survives restarts; the mutex orders callers in this process.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

const (
	createSequence = `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`
	seedSequence = `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`
	bumpSequence = `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`
)

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	for _, stmt := range []string{createSequence, seedSequence} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init sequence: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the next unused sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (seq int64, err error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.db.QueryRowContext(ctx, bumpSequence).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with the SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// builder returns a SQL builder for the store's dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// eventWhere applies QueryOpts to a select over an event table, oldest
// first.
func eventWhere(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy("sequence")
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}
