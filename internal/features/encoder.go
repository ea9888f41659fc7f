package features

import (
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/mindcheck/internal/survey"
)

// Vector is an encoded response in expected-column order.
type Vector []float64

// Encoding is the result of encoding one response.
type Encoding struct {
	// Columns is the schema's expected column list.
	Columns []string

	// Values holds one value per column, in Columns order.
	Values Vector

	// Defaulted lists the fields whose answer was absent or not in the
	// field's table. Their columns carry the neutral default 0, which is
	// indistinguishable in Values from a genuine lowest-rank answer.
	Defaulted []survey.Field

	// Dropped lists produced columns the schema does not expect.
	Dropped []string
}

// Value returns the value of a column.
func (e Encoding) Value(col string) (float64, bool) {
	for i, c := range e.Columns {
		if c == col {
			return e.Values[i], true
		}
	}
	return 0, false
}

// Map returns the encoding as a column → value map.
func (e Encoding) Map() map[string]float64 {
	m := make(map[string]float64, len(e.Columns))
	for i, c := range e.Columns {
		m[c] = e.Values[i]
	}
	return m
}

// WasDefaulted reports whether field f fell back to the neutral default.
func (e Encoding) WasDefaulted(f survey.Field) bool {
	for _, d := range e.Defaulted {
		if d == f {
			return true
		}
	}
	return false
}

// produced accumulates columns in production order.
type produced struct {
	order  []string
	values map[string]float64
}

func (p *produced) set(col string, v float64) {
	if _, ok := p.values[col]; !ok {
		p.order = append(p.order, col)
	}
	p.values[col] = v
}

// Encode maps a response onto the schema's expected columns.
//
// Binary and ordinal fields are looked up in their tables. Categorical
// fields are one-hot expanded against their full category domain with the
// reference category dropped, so answering the reference category leaves
// every indicator at 0. Answers that are absent or unrecognized encode to
// 0, the same value as the lowest-ranked answer; this matches the behaviour
// the upstream model was trained with and is reported in
// Encoding.Defaulted rather than treated as an error.
//
// Response keys that are not questionnaire fields but name an expected
// column no table produces are passed through when their answer is numeric.
//
// Encode never fails and is deterministic.
func Encode(resp *survey.Response, s *Schema) Encoding {
	p := &produced{values: make(map[string]float64)}
	var defaulted []survey.Field

	lookup := func(t ValueTable) {
		ans, ok := resp.Answer(t.Field)
		v, hit := t.Values[ans]
		if !ok || !hit {
			defaulted = append(defaulted, t.Field)
			v = 0
		}
		p.set(string(t.Field), float64(v))
	}
	for _, t := range s.binary {
		lookup(t)
	}
	for _, t := range s.ordinal {
		lookup(t)
	}

	for _, c := range s.categorical {
		cat, ok := resp.Answer(c.Field)
		if !ok {
			cat = UnknownCategory
		}
		known := false
		for _, k := range c.Categories {
			if k == cat {
				known = true
				break
			}
		}
		if !known {
			defaulted = append(defaulted, c.Field)
		}
		if cat == c.Reference() {
			continue
		}
		p.set(c.Column(cat), 1)
	}

	for _, e := range resp.Entries() {
		if e.Field != "" || !s.Expects(e.Key) || s.Produces(e.Key) {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(e.Answer), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			p.set(e.Key, v)
		}
	}

	return reconcile(p, s, defaulted)
}

// reconcile aligns produced columns with the expected column list:
// missing columns become 0, unexpected ones are dropped.
func reconcile(p *produced, s *Schema, defaulted []survey.Field) Encoding {
	cols := s.ExpectedColumns()
	values := make(Vector, len(cols))
	for i, col := range cols {
		values[i] = p.values[col]
	}

	var dropped []string
	for _, col := range p.order {
		if !s.Expects(col) {
			dropped = append(dropped, col)
		}
	}

	return Encoding{
		Columns:   cols,
		Values:    values,
		Defaulted: defaulted,
		Dropped:   dropped,
	}
}
