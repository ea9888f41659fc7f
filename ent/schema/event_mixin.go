package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin gives every event table a position in one shared,
// gap-free ordering plus the time it was written.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	seq := field.Int64("sequence").Unique().Immutable()
	at := field.Time("timestamp").Default(time.Now).Immutable().Comment("UTC")
	return []ent.Field{seq, at}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{index.Fields("timestamp")}
}
