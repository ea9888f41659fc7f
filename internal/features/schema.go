package features

import (
	"slices"

	"github.com/abhisek/mindcheck/internal/survey"
)

// Kind classifies how a field is encoded.
type Kind int

const (
	KindBinary Kind = iota
	KindOrdinal
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindOrdinal:
		return "ordinal"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// UnknownCategory is the category used for an absent categorical answer.
const UnknownCategory = "Unknown"

// SchemaVersion is the version of the built-in encoding tables.
const SchemaVersion = "v1.0.0"

// ValueTable maps each answer of a binary or ordinal field to its code.
type ValueTable struct {
	Field  survey.Field
	Values map[string]int
}

// Categorical describes a one-hot expanded field. Categories are in
// lexical order; the first one is the dropped reference category.
type Categorical struct {
	Field      survey.Field
	Categories []string
}

// Reference returns the dropped reference category.
func (c Categorical) Reference() string {
	return c.Categories[0]
}

// Column returns the indicator column name for a category.
func (c Categorical) Column(category string) string {
	return ColumnName(c.Field, category)
}

// Columns returns the indicator columns, reference excluded.
func (c Categorical) Columns() []string {
	out := make([]string, 0, len(c.Categories)-1)
	for _, cat := range c.Categories[1:] {
		out = append(out, c.Column(cat))
	}
	return out
}

// ColumnName returns the indicator column for field f and category cat.
func ColumnName(f survey.Field, cat string) string {
	return string(f) + "_" + cat
}

var binaryTables = []ValueTable{
	{survey.FieldGender, map[string]int{"Male": 0, "Female": 1}},
	{survey.FieldSelfEmployed, map[string]int{survey.OptNo: 0, survey.OptYes: 1}},
	{survey.FieldFamilyHistory, map[string]int{survey.OptNo: 0, survey.OptYes: 1}},
	{survey.FieldRemoteWork, map[string]int{survey.OptNo: 0, survey.OptYes: 1}},
	{survey.FieldTechCompany, map[string]int{survey.OptNo: 0, survey.OptYes: 1}},
	{survey.FieldObsConsequence, map[string]int{survey.OptNo: 0, survey.OptYes: 1}},
}

// Ranks follow severity (work_interfere, leave) or willingness (the rest).
var ordinalTables = []ValueTable{
	{survey.FieldWorkInterfere, map[string]int{"Never": 0, "Rarely": 1, "Sometimes": 2, "Often": 3}},
	{survey.FieldLeave, map[string]int{
		"Very easy":          0,
		"Somewhat easy":      1,
		survey.OptDontKnow:   2,
		"Somewhat difficult": 3,
		"Very difficult":     4,
	}},
	{survey.FieldMentalHealthConsequence, map[string]int{survey.OptNo: 0, survey.OptMaybe: 1, survey.OptYes: 2}},
	{survey.FieldPhysHealthConsequence, map[string]int{survey.OptNo: 0, survey.OptMaybe: 1, survey.OptYes: 2}},
	{survey.FieldMentalHealthInterview, map[string]int{survey.OptNo: 0, survey.OptMaybe: 1, survey.OptYes: 2}},
	{survey.FieldPhysHealthInterview, map[string]int{survey.OptNo: 0, survey.OptMaybe: 1, survey.OptYes: 2}},
}

var categoricalFields = []Categorical{
	{survey.FieldNoEmployees, []string{"1-5", "100-500", "26-100", "500-1000", "6-25", "More than 1000"}},
	{survey.FieldBenefits, []string{survey.OptDontKnow, survey.OptNo, survey.OptYes}},
	{survey.FieldCareOptions, []string{survey.OptNo, survey.OptNotSure, survey.OptYes}},
	{survey.FieldWellnessProgram, []string{survey.OptDontKnow, survey.OptNo, survey.OptYes}},
	{survey.FieldSeekHelp, []string{survey.OptDontKnow, survey.OptNo, survey.OptYes}},
	{survey.FieldAnonymity, []string{survey.OptDontKnow, survey.OptNo, survey.OptYes}},
	{survey.FieldCoworkers, []string{survey.OptNo, survey.OptSomeOfThem, survey.OptYes}},
	{survey.FieldSupervisor, []string{survey.OptNo, survey.OptSomeOfThem, survey.OptYes}},
	{survey.FieldMentalVsPhysical, []string{survey.OptDontKnow, survey.OptNo, survey.OptYes}},
}

// Schema is the encoding specification: the per-field tables plus the
// ordered column list the fitted normalizer expects. A Schema is never
// mutated after construction.
type Schema struct {
	version     string
	binary      []ValueTable
	ordinal     []ValueTable
	categorical []Categorical
	expected    []string
	expectedSet map[string]bool
}

// DefaultSchema returns the built-in schema. Its expected columns are the
// columns the tables produce, in table order.
func DefaultSchema() *Schema {
	s := &Schema{
		version:     SchemaVersion,
		binary:      binaryTables,
		ordinal:     ordinalTables,
		categorical: categoricalFields,
	}
	s.setExpected(s.ProducedColumns())
	return s
}

// WithExpectedColumns returns a copy of s whose expected columns are cols,
// typically the feature names frozen into a trained normalizer.
func (s *Schema) WithExpectedColumns(cols []string) *Schema {
	c := *s
	c.setExpected(slices.Clone(cols))
	return &c
}

func (s *Schema) setExpected(cols []string) {
	s.expected = cols
	s.expectedSet = make(map[string]bool, len(cols))
	for _, col := range cols {
		s.expectedSet[col] = true
	}
}

// Version returns the schema version.
func (s *Schema) Version() string {
	return s.version
}

// ExpectedColumns returns a copy of the expected column list.
func (s *Schema) ExpectedColumns() []string {
	return slices.Clone(s.expected)
}

// Len returns the number of expected columns.
func (s *Schema) Len() int {
	return len(s.expected)
}

// Expects reports whether col is an expected column.
func (s *Schema) Expects(col string) bool {
	return s.expectedSet[col]
}

// Binary returns the binary tables.
func (s *Schema) Binary() []ValueTable { return s.binary }

// Ordinal returns the ordinal tables.
func (s *Schema) Ordinal() []ValueTable { return s.ordinal }

// Categorical returns the categorical field definitions.
func (s *Schema) Categorical() []Categorical { return s.categorical }

// KindOf returns how field f is encoded.
func (s *Schema) KindOf(f survey.Field) (Kind, bool) {
	for _, t := range s.binary {
		if t.Field == f {
			return KindBinary, true
		}
	}
	for _, t := range s.ordinal {
		if t.Field == f {
			return KindOrdinal, true
		}
	}
	for _, c := range s.categorical {
		if c.Field == f {
			return KindCategorical, true
		}
	}
	return 0, false
}

// ProducedColumns lists every column the tables can produce: binary
// fields, ordinal fields, then indicator columns.
func (s *Schema) ProducedColumns() []string {
	var cols []string
	for _, t := range s.binary {
		cols = append(cols, string(t.Field))
	}
	for _, t := range s.ordinal {
		cols = append(cols, string(t.Field))
	}
	for _, c := range s.categorical {
		cols = append(cols, c.Columns()...)
	}
	return cols
}

// Produces reports whether col is one of the table-produced columns.
func (s *Schema) Produces(col string) bool {
	return slices.Contains(s.ProducedColumns(), col)
}
