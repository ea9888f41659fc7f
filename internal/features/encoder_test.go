package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindcheck/internal/survey"
)

func responseOf(t *testing.T, kv map[string]string) *survey.Response {
	t.Helper()
	return survey.FromMap(kv)
}

// fullResponse answers every question with its option at index pick modulo
// the option count.
func fullResponse(pick int) *survey.Response {
	r := survey.NewResponse()
	for _, q := range survey.Questions() {
		_ = r.SetField(q.Field, q.Options[pick%len(q.Options)])
	}
	return r
}

func TestDefaultSchema_Shape(t *testing.T) {
	s := DefaultSchema()
	assert.Equal(t, SchemaVersion, s.Version())
	assert.Equal(t, 33, s.Len())

	cols := s.ExpectedColumns()
	assert.Equal(t, "Gender", cols[0])
	assert.Equal(t, "phys_health_interview", cols[11])
	assert.Equal(t, "no_employees_100-500", cols[12])
	assert.Equal(t, "mental_vs_physical_Yes", cols[32])
}

func TestSchema_CoversEveryQuestion(t *testing.T) {
	s := DefaultSchema()
	seen := make(map[survey.Field]int)
	for _, tbl := range s.Binary() {
		seen[tbl.Field]++
		q, ok := survey.Get(tbl.Field)
		require.True(t, ok, "binary field %q not in catalog", tbl.Field)
		assert.Len(t, tbl.Values, 2, "binary field %q", tbl.Field)
		for _, o := range q.Options {
			_, mapped := tbl.Values[o]
			assert.True(t, mapped, "option %q of %q not mapped", o, tbl.Field)
		}
	}
	for _, tbl := range s.Ordinal() {
		seen[tbl.Field]++
		q, ok := survey.Get(tbl.Field)
		require.True(t, ok, "ordinal field %q not in catalog", tbl.Field)
		ranks := make(map[int]bool)
		for _, o := range q.Options {
			v, mapped := tbl.Values[o]
			assert.True(t, mapped, "option %q of %q not mapped", o, tbl.Field)
			ranks[v] = true
		}
		for i := range len(q.Options) {
			assert.True(t, ranks[i], "field %q missing rank %d", tbl.Field, i)
		}
	}
	for _, c := range s.Categorical() {
		seen[c.Field]++
		q, ok := survey.Get(c.Field)
		require.True(t, ok, "categorical field %q not in catalog", c.Field)
		assert.ElementsMatch(t, q.Options, c.Categories, "domain of %q", c.Field)
		assert.IsNonDecreasing(t, c.Categories, "categories of %q must be sorted", c.Field)
	}
	for _, f := range survey.Fields() {
		assert.Equal(t, 1, seen[f], "field %q must appear in exactly one table", f)
	}
}

func TestEncode_FixedLengthAndOrder(t *testing.T) {
	s := DefaultSchema()
	for pick := range 6 {
		enc := Encode(fullResponse(pick), s)
		require.Len(t, enc.Values, s.Len())
		assert.Equal(t, s.ExpectedColumns(), enc.Columns)
		assert.Empty(t, enc.Defaulted, "pick %d", pick)
	}
}

func TestEncode_Example(t *testing.T) {
	s := DefaultSchema()
	enc := Encode(responseOf(t, map[string]string{
		"Gender":         "Female",
		"self_employed":  "Yes",
		"work_interfere": "Often",
	}), s)

	want := map[string]float64{
		"Gender":         1,
		"self_employed":  1,
		"work_interfere": 3,
	}
	for i, col := range enc.Columns {
		assert.Equal(t, want[col], enc.Values[i], "column %q", col)
	}
}

func TestEncode_UnrecognizedEqualsAbsent(t *testing.T) {
	s := DefaultSchema()
	other := Encode(responseOf(t, map[string]string{"Gender": "Other"}), s)
	absent := Encode(survey.NewResponse(), s)

	assert.Equal(t, absent.Values, other.Values)
	v, _ := other.Value("Gender")
	assert.Zero(t, v)
	assert.True(t, other.WasDefaulted(survey.FieldGender))
}

func TestEncode_AbsentFieldsAreZero(t *testing.T) {
	s := DefaultSchema()
	enc := Encode(survey.NewResponse(), s)
	for i, col := range enc.Columns {
		assert.Zero(t, enc.Values[i], "column %q", col)
	}
	assert.Len(t, enc.Defaulted, survey.Count())
	// Absent categorical answers produce <field>_Unknown, which is not expected.
	assert.Contains(t, enc.Dropped, "benefits_Unknown")
}

func TestEncode_ReferenceCategoryAllZero(t *testing.T) {
	s := DefaultSchema()
	for _, c := range s.Categorical() {
		enc := Encode(responseOf(t, map[string]string{string(c.Field): c.Reference()}), s)
		for _, col := range c.Columns() {
			v, ok := enc.Value(col)
			require.True(t, ok, "column %q expected", col)
			assert.Zero(t, v, "column %q", col)
		}
		assert.False(t, enc.WasDefaulted(c.Field), "reference answer is a real answer")
	}
}

func TestEncode_CategoricalOneHot(t *testing.T) {
	s := DefaultSchema()
	enc := Encode(responseOf(t, map[string]string{
		"no_employees": "More than 1000",
		"coworkers":    "Some of them",
	}), s)

	m := enc.Map()
	assert.Equal(t, 1.0, m["no_employees_More than 1000"])
	assert.Equal(t, 0.0, m["no_employees_6-25"])
	assert.Equal(t, 1.0, m["coworkers_Some of them"])
	assert.Equal(t, 0.0, m["coworkers_Yes"])
}

func TestEncode_UnknownCategoryDropped(t *testing.T) {
	s := DefaultSchema()
	enc := Encode(responseOf(t, map[string]string{"benefits": "Perhaps"}), s)

	assert.Contains(t, enc.Dropped, "benefits_Perhaps")
	assert.True(t, enc.WasDefaulted(survey.FieldBenefits))
	for _, col := range []string{"benefits_No", "benefits_Yes"} {
		v, _ := enc.Value(col)
		assert.Zero(t, v)
	}
}

func TestEncode_QuestionTextKeys(t *testing.T) {
	s := DefaultSchema()
	byID := Encode(responseOf(t, map[string]string{
		"Gender":       "Female",
		"leave":        "Very difficult",
		"no_employees": "26-100",
	}), s)
	byText := Encode(responseOf(t, map[string]string{
		"What is your gender?":                                 "Female",
		"How easy is it to take work leave for mental health?": "Very difficult",
		"Company Size (in terms of employee count) ?":          "26-100",
	}), s)
	assert.Equal(t, byID.Values, byText.Values)
}

func TestEncode_Deterministic(t *testing.T) {
	s := DefaultSchema()
	r := fullResponse(1)
	a := Encode(r, s)
	b := Encode(r, s)
	assert.Equal(t, a, b)
}

func TestEncode_ExpectedColumnsOverride(t *testing.T) {
	base := DefaultSchema()
	cols := []string{"Age", "work_interfere", "Gender", "benefits_Yes", "treatment_history"}
	s := base.WithExpectedColumns(cols)

	enc := Encode(responseOf(t, map[string]string{
		"Age":            "41",
		"Gender":         "Female",
		"work_interfere": "Sometimes",
		"benefits":       "Yes",
		"self_employed":  "Yes",
	}), s)

	assert.Equal(t, cols, enc.Columns)
	assert.Equal(t, Vector{41, 2, 1, 1, 0}, enc.Values)
	assert.Contains(t, enc.Dropped, "self_employed")
	// The override must not leak into the original schema.
	assert.Equal(t, 33, base.Len())
}

func TestEncode_PassthroughIgnoresNonNumeric(t *testing.T) {
	s := DefaultSchema().WithExpectedColumns([]string{"Age"})
	enc := Encode(responseOf(t, map[string]string{"Age": "forty"}), s)
	assert.Equal(t, Vector{0}, enc.Values)
}

func TestEncode_PassthroughCannotOverrideTableColumns(t *testing.T) {
	s := DefaultSchema().WithExpectedColumns([]string{"Age", "Gender", "benefits_Yes", "work_interfere"})
	enc := Encode(responseOf(t, map[string]string{
		"Age":            "30",
		"benefits":       "No",
		"benefits_Yes":   "7",
		"work_interfere": "Never",
		" Gender ":       " Female ",
	}), s)

	assert.Equal(t, Vector{30, 1, 0, 0}, enc.Values)
	assert.False(t, enc.WasDefaulted(survey.FieldGender), "padded answers still match the table")
	assert.True(t, s.Produces("benefits_Yes"))
	assert.False(t, s.Produces("Age"))
}

func TestEncode_NilResponse(t *testing.T) {
	s := DefaultSchema()
	enc := Encode(nil, s)
	assert.Len(t, enc.Values, s.Len())
}
