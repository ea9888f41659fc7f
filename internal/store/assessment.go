package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mindcheck/internal/survey"
)

var assessmentColumns = []string{
	"id", "created_at", "name", "email", "answers", "label",
	"probability", "model_version", "defaulted", "reflection",
}

// assessmentRepo implements AssessmentRepo with the SQL builder.
type assessmentRepo struct {
	db *sql.DB
}

func (r *assessmentRepo) Save(ctx context.Context, a *Assessment) error {
	if a.ID == "" {
		return errors.New("save assessment: empty id")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	resp := a.Answers
	if resp == nil {
		resp = survey.NewResponse()
	}
	answers, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	defaulted, err := json.Marshal(a.Defaulted)
	if err != nil {
		return fmt.Errorf("marshal defaulted: %w", err)
	}

	q, args := builder().Insert(tableAssessments).
		Columns(assessmentColumns...).
		Values(a.ID, a.CreatedAt.UTC(), a.Name, a.Email, string(answers), a.Label,
			a.Probability, a.ModelVersion, string(defaulted), a.Reflection).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, id string) (*Assessment, error) {
	q, args := builder().Select(assessmentColumns...).
		From(entsql.Table(tableAssessments)).
		Where(entsql.EQ("id", id)).
		Query()

	a, err := scanAssessment(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	return a, nil
}

func (r *assessmentRepo) List(ctx context.Context, opts ListOpts) ([]*Assessment, error) {
	sel := builder().Select(assessmentColumns...).
		From(entsql.Table(tableAssessments)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if opts.Email != "" {
		sel = sel.Where(entsql.EQ("email", opts.Email))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			// SQLite requires LIMIT with OFFSET.
			sel = sel.Limit(-1)
		}
		sel = sel.Offset(opts.Offset)
	}
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) Latest(ctx context.Context) (*Assessment, error) {
	list, err := r.List(ctx, ListOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *assessmentRepo) SetReflection(ctx context.Context, id, text string) error {
	q, args := builder().Update(tableAssessments).
		Set("reflection", text).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update reflection: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *assessmentRepo) DeleteAll(ctx context.Context) (int64, error) {
	q, args := builder().Delete(tableAssessments).Query()
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("delete assessments: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*Assessment, error) {
	var (
		a         Assessment
		answers   string
		defaulted sql.NullString
	)
	err := row.Scan(&a.ID, &a.CreatedAt, &a.Name, &a.Email, &answers, &a.Label,
		&a.Probability, &a.ModelVersion, &defaulted, &a.Reflection)
	if err != nil {
		return nil, err
	}

	a.Answers = survey.NewResponse()
	if err := json.Unmarshal([]byte(answers), a.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	a.Answers.Freeze()

	if defaulted.Valid && defaulted.String != "" {
		if err := json.Unmarshal([]byte(defaulted.String), &a.Defaulted); err != nil {
			return nil, fmt.Errorf("decode defaulted: %w", err)
		}
	}
	return &a, nil
}
