package survey

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCatalog_Count(t *testing.T) {
	if got := Count(); got != 21 {
		t.Fatalf("got %d questions, want 21", got)
	}
	if len(Fields()) != Count() {
		t.Fatalf("Fields() length %d != Count() %d", len(Fields()), Count())
	}
}

func TestCatalog_Order(t *testing.T) {
	first, _ := At(0)
	if first.Field != FieldGender {
		t.Errorf("first question = %q, want %q", first.Field, FieldGender)
	}
	last, _ := At(Count() - 1)
	if last.Field != FieldObsConsequence {
		t.Errorf("last question = %q, want %q", last.Field, FieldObsConsequence)
	}
	if _, ok := At(Count()); ok {
		t.Error("At(Count()) should be out of range")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Field
		ok   bool
	}{
		{"Gender", FieldGender, true},
		{"What is your gender?", FieldGender, true},
		{"  Are you self-employed?  ", FieldSelfEmployed, true},
		{"work_interfere", FieldWorkInterfere, true},
		{"gender", "", false},
		{"Age", "", false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidateCatalog_Rejects(t *testing.T) {
	bad := []Question{
		{FieldGender, "Q1", []string{"A", "B"}},
		{FieldGender, "Q1", []string{"A"}},
		{FieldLeave, "", []string{"A", "A"}},
	}
	if err := validateCatalog(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if err := validateCatalog(questions); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
}

func TestResponse_SetKeepsPosition(t *testing.T) {
	r := NewResponse()
	_ = r.Set("Gender", "Male")
	_ = r.Set("Are you self-employed?", "No")
	_ = r.Set("What is your gender?", "Female")

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Field != FieldGender || entries[0].Answer != "Female" {
		t.Errorf("entry 0 = %+v, want Gender=Female", entries[0])
	}
	if entries[1].Field != FieldSelfEmployed {
		t.Errorf("entry 1 field = %q, want %q", entries[1].Field, FieldSelfEmployed)
	}
}

func TestResponse_Frozen(t *testing.T) {
	r := NewResponse()
	_ = r.SetField(FieldGender, "Male")
	r.Freeze()

	if err := r.Set("Gender", "Female"); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if err := r.Remove("Gender"); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen on remove, got %v", err)
	}
	if got, _ := r.Answer(FieldGender); got != "Male" {
		t.Errorf("answer changed after freeze: %q", got)
	}

	c := r.Clone()
	if c.Frozen() {
		t.Error("clone should not be frozen")
	}
}

func TestResponse_Remove(t *testing.T) {
	r := NewResponse()
	_ = r.SetField(FieldGender, "Male")
	_ = r.SetField(FieldSelfEmployed, "Yes")
	_ = r.SetField(FieldFamilyHistory, "No")

	_ = r.Remove("self_employed")

	if r.Len() != 2 {
		t.Fatalf("got len %d, want 2", r.Len())
	}
	if got, ok := r.Answer(FieldFamilyHistory); !ok || got != "No" {
		t.Errorf("family_history = (%q, %v), want (No, true)", got, ok)
	}
	if _, ok := r.Answer(FieldSelfEmployed); ok {
		t.Error("self_employed should be removed")
	}
}

func TestResponse_UnknownKeysKept(t *testing.T) {
	r := NewResponse()
	_ = r.Set("Age", "34")
	entries := r.Entries()
	if len(entries) != 1 || entries[0].Field != "" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if len(r.Unanswered()) != Count() {
		t.Errorf("unknown key should not count as an answer")
	}
}

func TestResponse_JSONRoundTripKeepsOrder(t *testing.T) {
	r := NewResponse()
	_ = r.Set("Do you work remotely?", "Yes")
	_ = r.Set("Gender", "Female")
	_ = r.Set("Age", "40")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"remote_work":"Yes","Gender":"Female","Age":"40"}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	var back Response
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Entries()[0].Field != FieldRemoteWork {
		t.Errorf("order not preserved: %+v", back.Entries())
	}
}

func TestFromMap_Order(t *testing.T) {
	r := FromMap(map[string]string{
		"zeta":                  "1",
		"obs_consequence":       "No",
		"What is your gender?":  "Male",
		"alpha":                 "2",
		"Do you work remotely?": "Yes",
	})
	var keys []string
	for _, e := range r.Entries() {
		if e.Field != "" {
			keys = append(keys, string(e.Field))
		} else {
			keys = append(keys, e.Key)
		}
	}
	want := []string{"Gender", "remote_work", "obs_consequence", "alpha", "zeta"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}

func TestFromMap_FieldIDWinsOverQuestionText(t *testing.T) {
	m := map[string]string{
		"Gender":                "Female",
		"What is your gender?":  "Male",
		" What is your gender?": "Male",
	}
	for range 100 {
		r := FromMap(m)
		if r.Len() != 1 {
			t.Fatalf("aliases should share one entry, got %+v", r.Entries())
		}
		if got, _ := r.Answer(FieldGender); got != "Female" {
			t.Fatalf("Gender = %q, want the field-ID answer %q", got, "Female")
		}
	}
}

func TestFromMap_TextAliasesPickFirstKey(t *testing.T) {
	m := map[string]string{
		"What is your gender?":  "Female",
		" What is your gender?": "Male",
	}
	for range 100 {
		if got, _ := FromMap(m).Answer(FieldGender); got != "Male" {
			t.Fatalf("Gender = %q, want %q from the lexically first key", got, "Male")
		}
	}
}

func TestResponse_SetTrimsAnswer(t *testing.T) {
	r := NewResponse()
	if err := r.Set(" Gender ", " Female\n"); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Answer(FieldGender); got != "Female" {
		t.Errorf("Answer = %q, want %q", got, "Female")
	}
}

func TestParseAnswers_YAML(t *testing.T) {
	doc := []byte(`
Gender: Female
self_employed: Yes
"How often does work interfere with your mental health?": Often
`)
	r, err := ParseAnswers(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, _ := r.Answer(FieldSelfEmployed); got != "Yes" {
		t.Errorf("self_employed = %q, want Yes (verbatim scalar)", got)
	}
	if got, _ := r.Answer(FieldWorkInterfere); got != "Often" {
		t.Errorf("work_interfere = %q, want Often", got)
	}
}

func TestParseAnswers_JSON(t *testing.T) {
	r, err := ParseAnswers([]byte(`{"Gender": "Male", "leave": "Very easy"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("got %d entries, want 2", r.Len())
	}
}

func TestParseAnswers_Rejects(t *testing.T) {
	for _, doc := range []string{"- a\n- b\n", "Gender:\n  nested: x\n"} {
		if _, err := ParseAnswers([]byte(doc)); err == nil {
			t.Errorf("expected error for %q", doc)
		}
	}
	r, err := ParseAnswers(nil)
	if err != nil || r.Len() != 0 {
		t.Errorf("empty document: got (%v, %v)", r, err)
	}
}
