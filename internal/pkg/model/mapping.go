// Package model defines the mapping document: the root Mapping,
// its ordered Fields and each field's transformation Pipeline.
//
// Documents are edited as immutable snapshots, see the pipeline package.
// The JSON form is the wire format of the remote mapping service.
package model

import (
	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
)

// Mapping is the root document. Fields order is significant and user-visible.
type Mapping struct {
	Name    string   `json:"name" validate:"required"`
	Version string   `json:"version" validate:"required"`
	Fields  []*Field `json:"fields" validate:"dive"`
}

// Field is one output field definition.
// ID is assigned once at creation and never reused or mutated.
// Target may be empty transiently while the field is edited.
type Field struct {
	ID          string        `json:"id" validate:"required"`
	Target      string        `json:"target"`
	Type        string        `json:"type" validate:"required"`
	Input       []InputSource `json:"input"`
	Pipeline    []*Operation  `json:"pipeline"`
	CopyTo      []string      `json:"copy_to,omitempty"`
	IgnoreAbove *int          `json:"ignore_above,omitempty"`
	NullValue   any           `json:"null_value,omitempty"`
}

// Clone returns a deep copy, via the JSON round-trip,
// so the copy contains only JSON-compatible values.
func (m *Mapping) Clone() *Mapping {
	out := &Mapping{}
	json.MustDecode(json.MustEncode(m, false), out)
	return out
}

// FieldByID returns the field with the given id and its position,
// or (nil, -1) if not found.
func (m *Mapping) FieldByID(id string) (*Field, int) {
	for i, f := range m.Fields {
		if f.ID == id {
			return f, i
		}
	}
	return nil, -1
}

// FieldIDs returns ids in the fields order.
func (m *Mapping) FieldIDs() []string {
	out := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		out[i] = f.ID
	}
	return out
}

func (f *Field) Clone() *Field {
	out := &Field{}
	json.MustDecode(json.MustEncode(f, false), out)
	return out
}
