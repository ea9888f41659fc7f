package survey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrFrozen is returned when modifying a submitted response.
var ErrFrozen = errors.New("response is frozen")

// Entry is one recorded answer. Field is empty when the key did not
// resolve to a known question.
type Entry struct {
	Key    string
	Field  Field
	Answer string
}

// Response holds the answers given so far, in the order the questions were
// first answered. Keys that resolve to the same field share one entry.
type Response struct {
	entries []Entry
	index   map[string]int
	frozen  bool
}

// NewResponse creates an empty response.
func NewResponse() *Response {
	return &Response{index: make(map[string]int)}
}

// FromMap builds a response from a plain key/answer map. Entries are ordered
// by questionnaire position, followed by unknown keys in lexical order.
// When several keys name the same question, the field identifier wins over
// question text; otherwise the lexically first key is used.
func FromMap(m map[string]string) *Response {
	r := NewResponse()
	chosen := make(map[Field]string)
	var unknown []string
	for _, k := range slices.Sorted(maps.Keys(m)) {
		f, ok := Lookup(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		prev, seen := chosen[f]
		if !seen || (isFieldKey(k, f) && !isFieldKey(prev, f)) {
			chosen[f] = k
		}
	}
	for _, f := range Fields() {
		if k, ok := chosen[f]; ok {
			_ = r.Set(k, m[k])
		}
	}
	for _, k := range unknown {
		_ = r.Set(k, m[k])
	}
	return r
}

func isFieldKey(key string, f Field) bool {
	return strings.TrimSpace(key) == string(f)
}

func canonicalKey(key string) (string, Field) {
	if f, ok := Lookup(key); ok {
		return string(f), f
	}
	return key, ""
}

// Set records an answer. Surrounding whitespace is trimmed from the answer
// as it is from the key. Re-answering keeps the original position.
func (r *Response) Set(key, answer string) error {
	if r.frozen {
		return ErrFrozen
	}
	answer = strings.TrimSpace(answer)
	if r.index == nil {
		r.index = make(map[string]int)
	}
	ck, f := canonicalKey(key)
	if i, ok := r.index[ck]; ok {
		r.entries[i].Answer = answer
		return nil
	}
	r.index[ck] = len(r.entries)
	r.entries = append(r.entries, Entry{Key: key, Field: f, Answer: answer})
	return nil
}

// SetField records an answer for a known field.
func (r *Response) SetField(f Field, answer string) error {
	return r.Set(string(f), answer)
}

// Answer returns the answer recorded for f.
func (r *Response) Answer(f Field) (string, bool) {
	if r == nil {
		return "", false
	}
	i, ok := r.index[string(f)]
	if !ok {
		return "", false
	}
	return r.entries[i].Answer, true
}

// Remove deletes the answer for key, if any.
func (r *Response) Remove(key string) error {
	if r.frozen {
		return ErrFrozen
	}
	ck, _ := canonicalKey(key)
	i, ok := r.index[ck]
	if !ok {
		return nil
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.index, ck)
	for k, j := range r.index {
		if j > i {
			r.index[k] = j - 1
		}
	}
	return nil
}

// Entries returns a copy of the recorded answers in order.
func (r *Response) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded answers.
func (r *Response) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Freeze makes the response immutable.
func (r *Response) Freeze() {
	r.frozen = true
}

// Frozen reports whether the response has been submitted.
func (r *Response) Frozen() bool {
	return r.frozen
}

// Clone returns an unfrozen deep copy.
func (r *Response) Clone() *Response {
	c := NewResponse()
	for _, e := range r.Entries() {
		_ = c.Set(e.Key, e.Answer)
	}
	return c
}

// Unanswered returns the catalog fields that have no answer yet.
func (r *Response) Unanswered() []Field {
	var out []Field
	for _, f := range Fields() {
		if _, ok := r.Answer(f); !ok {
			out = append(out, f)
		}
	}
	return out
}

// MarshalJSON encodes the response as a JSON object preserving entry order.
// Known fields are written under their field identifier.
func (r *Response) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range r.Entries() {
		if i > 0 {
			b.WriteByte(',')
		}
		key := e.Key
		if e.Field != "" {
			key = string(e.Field)
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Answer)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (r *Response) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("survey response: expected JSON object")
	}
	fresh := NewResponse()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("survey response: invalid key %v", kt)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("survey response: value for %q: %w", key, err)
		}
		_ = fresh.Set(key, val)
	}
	*r = *fresh
	return nil
}
