package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AssessmentEvent records activity around an assessment: start,
// completion, report export and speech rendering.
type AssessmentEvent struct {
	ent.Schema
}

func (AssessmentEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AssessmentEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").
			Comment("assessment.started, assessment.completed, report.exported, speech.rendered, speech.failed"),
		field.String("assessment_id").
			Default(""),
		field.Text("detail").
			Default(""),
	}
}

func (AssessmentEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
		index.Fields("assessment_id"),
	}
}
