package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/mindcheck/internal/survey"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{tableAssessments, tableAssessmentEvents, tableLLMRequestEvents, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindcheck.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("close #%d: %v", i+1, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func newAssessment(id string, created time.Time) *Assessment {
	resp := survey.NewResponse()
	_ = resp.SetField(survey.FieldRemoteWork, "Yes")
	_ = resp.SetField(survey.FieldGender, "Female")
	return &Assessment{
		ID:           id,
		CreatedAt:    created,
		Name:         "Ana",
		Email:        "ana@example.com",
		Answers:      resp,
		Label:        1,
		Probability:  0.73,
		ModelVersion: "test-1",
		Defaulted:    []string{"benefits"},
	}
}

func TestAssessmentSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, newAssessment("a-1", now)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "a-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ana" || got.Email != "ana@example.com" {
		t.Errorf("identity = %q/%q", got.Name, got.Email)
	}
	if got.Label != 1 || got.Probability != 0.73 {
		t.Errorf("label/probability = %d/%v", got.Label, got.Probability)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, now)
	}
	if len(got.Defaulted) != 1 || got.Defaulted[0] != "benefits" {
		t.Errorf("defaulted = %v", got.Defaulted)
	}

	entries := got.Answers.Entries()
	if len(entries) != 2 || entries[0].Field != survey.FieldRemoteWork || entries[1].Field != survey.FieldGender {
		t.Errorf("answers order not preserved: %+v", entries)
	}
	if !got.Answers.Frozen() {
		t.Error("stored answers should be frozen")
	}
}

func TestAssessmentGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.AssessmentRepo().Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAssessmentListAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if latest != nil {
		t.Fatal("expected nil assessment when none exist")
	}

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"a-1", "a-2", "a-3"} {
		a := newAssessment(id, base.Add(time.Duration(i)*time.Minute))
		if id == "a-2" {
			a.Email = "bo@example.com"
		}
		if err := repo.Save(ctx, a); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	all, err := repo.List(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a-3" || all[2].ID != "a-1" {
		t.Fatalf("list order wrong: %v", ids(all))
	}

	page, err := repo.List(ctx, ListOpts{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "a-2" {
		t.Errorf("page = %v, want [a-2]", ids(page))
	}

	byEmail, err := repo.List(ctx, ListOpts{Email: "bo@example.com"})
	if err != nil {
		t.Fatalf("list by email: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].ID != "a-2" {
		t.Errorf("by email = %v, want [a-2]", ids(byEmail))
	}

	latest, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != "a-3" {
		t.Errorf("latest = %s, want a-3", latest.ID)
	}
}

func TestAssessmentSetReflection(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, newAssessment("a-1", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SetReflection(ctx, "a-1", "Be kind to yourself."); err != nil {
		t.Fatalf("set reflection: %v", err)
	}
	got, err := repo.Get(ctx, "a-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Reflection != "Be kind to yourself." {
		t.Errorf("reflection = %q", got.Reflection)
	}

	if err := repo.SetReflection(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id err = %v, want ErrNotFound", err)
	}
}

func TestAssessmentDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	for _, id := range []string{"a-1", "a-2"} {
		if err := repo.Save(ctx, newAssessment(id, time.Now())); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	n, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	all, _ := repo.List(ctx, ListOpts{})
	if len(all) != 0 {
		t.Errorf("remaining = %d, want 0", len(all))
	}
}

func TestSaveRejectsEmptyID(t *testing.T) {
	s := openTestStore(t)
	a := newAssessment("", time.Now())
	if err := s.AssessmentRepo().Save(context.Background(), a); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendEvent(ctx, EventData{Kind: EventAssessmentStarted, AssessmentID: "a-1"}); err != nil {
		t.Fatalf("append event: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "reflection",
		InputTokens: 10, OutputTokens: 5, LatencyMs: 12, Success: true,
	}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendEvent(ctx, EventData{Kind: EventAssessmentCompleted, AssessmentID: "a-1", Detail: "label=1"}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Sequence != 1 || events[1].Sequence != 3 {
		t.Errorf("event sequences = %d,%d want 1,3", events[0].Sequence, events[1].Sequence)
	}
	if events[1].Detail != "label=1" || events[1].Kind != EventAssessmentCompleted {
		t.Errorf("event = %+v", events[1])
	}

	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm events: %v", err)
	}
	if len(llm) != 1 || llm[0].Sequence != 2 || !llm[0].Success || llm[0].Purpose != "reflection" {
		t.Errorf("llm events = %+v", llm)
	}

	after, err := repo.QueryEvents(ctx, QueryOpts{After: 1})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Sequence != 3 {
		t.Errorf("after=1 events = %+v", after)
	}

	limited, err := repo.QueryEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != 1 {
		t.Errorf("limit=1 events = %+v", limited)
	}
}

func TestLLMUsageAndLookup(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "reflection", InputTokens: 100, OutputTokens: 20, LatencyMs: 200, Success: true, RequestBody: "[user]\nhi"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "reflection", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "speech", InputTokens: 5, LatencyMs: 30, Success: false, ErrorMessage: "boom"},
	} {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Key != "reflection" {
		t.Fatalf("by purpose = %+v", byPurpose)
	}
	r := byPurpose[0]
	if r.Calls != 2 || r.InputTokens != 150 || r.OutputTokens != 30 || r.AvgLatencyMs != 150 {
		t.Errorf("reflection usage = %+v", r)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Key != "gemini-2.5-flash" {
		t.Errorf("by model = %+v", byModel)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "[user]\nhi" {
		t.Errorf("event 1 = %+v", e)
	}
	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v", missing, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv(EnvDBPath, filepath.Join(dir, "env", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path (env): %v", err)
	}
	if p != filepath.Join(dir, "env", "x.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv(EnvDBPath, "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path (xdg): %v", err)
	}
	if p != filepath.Join(dir, "mindcheck", "mindcheck.db") {
		t.Errorf("path = %q", p)
	}
}

func ids(list []*Assessment) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}
