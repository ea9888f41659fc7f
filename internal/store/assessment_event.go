package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendEvent(ctx context.Context, data EventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder().Insert(tableAssessmentEvents).
		Columns("sequence", "timestamp", "kind", "assessment_id", "detail").
		Values(seqNum, time.Now().UTC(), data.Kind, data.AssessmentID, data.Detail).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save %s event: %w", data.Kind, err)
	}
	return nil
}

func (r *eventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	sel := builder().Select("sequence", "timestamp", "kind", "assessment_id", "detail").
		From(entsql.Table(tableAssessmentEvents))
	q, args := eventWhere(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.Kind, &e.AssessmentID, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
