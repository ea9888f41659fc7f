package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Assessment is one submitted questionnaire and its prediction.
type Assessment struct {
	ent.Schema
}

func (Assessment) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID assigned when the assessment started"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.String("name"),
		field.String("email"),
		field.JSON("answers", map[string]string{}).
			Comment("Answers keyed by field ID, in question order"),
		field.Int("label").
			Comment("0 = low risk, 1 = high risk"),
		field.Float("probability").
			Default(-1).
			Comment("Probability of the high-risk label, -1 if unavailable"),
		field.String("model_version"),
		field.JSON("defaulted", []string{}).
			Optional().
			Comment("Fields that fell back to the neutral default"),
		field.Text("reflection").
			Default(""),
	}
}

func (Assessment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
		index.Fields("email"),
	}
}
