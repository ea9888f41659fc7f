package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/mindcheck/ent/schema"
)

const (
	tableAssessments      = "assessments"
	tableAssessmentEvents = "assessment_events"
	tableLLMRequestEvents = "llm_request_events"
)

// tables builds migration tables from the ent schema declarations.
func tables() ([]*schema.Table, error) {
	defs := []struct {
		name string
		def  ent.Interface
	}{
		{tableAssessments, entschema.Assessment{}},
		{tableAssessmentEvents, entschema.AssessmentEvent{}},
		{tableLLMRequestEvents, entschema.LLMRequestEvent{}},
	}

	out := make([]*schema.Table, 0, len(defs))
	for _, d := range defs {
		t, err := buildTable(d.name, d.def)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// buildTable converts an ent schema into a migration table. A field named
// "id" becomes the primary key; otherwise an auto-increment integer key
// is added.
func buildTable(name string, def ent.Interface) (*schema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	var (
		pk   *schema.Column
		cols []*schema.Column
	)
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		switch v := d.Default.(type) {
		case string, bool, int, int64, float64:
			col.Default = v
		}
		if d.Name == "id" {
			col.Unique = false
			pk = col
			continue
		}
		cols = append(cols, col)
	}
	if pk == nil {
		pk = &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	}

	t := schema.NewTable(name).AddPrimary(pk)
	for _, c := range cols {
		t.AddColumn(c)
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		idxName := name + "_" + strings.Join(d.Fields, "_")
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t, nil
}
