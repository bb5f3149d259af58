// Package pipeline mutates mapping snapshots.
//
// Every function deep-copies the input and returns a brand-new Mapping,
// callers treat snapshots as immutable between renders, so a retained
// previous snapshot stays valid for drift and diff comparisons.
package pipeline

import (
	"github.com/mappingstudio/mapping-studio/internal/pkg/idgenerator"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

// DefaultFieldType is assigned to newly added fields.
const DefaultFieldType = "keyword"

// FieldPatch is a shallow partial update of a field, nil members are
// left untouched. The field id is never part of a patch.
type FieldPatch struct {
	Target      *string
	Type        *string
	Input       []model.InputSource
	CopyTo      []string
	IgnoreAbove *int
	NullValue   any
}

// AddField appends a new field with a fresh id, empty target, default type,
// a single empty column input and an empty pipeline. It never fails.
func AddField(m *model.Mapping) *model.Mapping {
	out := m.Clone()
	out.Fields = append(out.Fields, &model.Field{
		ID:       idgenerator.FieldID(),
		Target:   "",
		Type:     DefaultFieldType,
		Input:    []model.InputSource{model.ColumnInput("")},
		Pipeline: []*model.Operation{},
	})
	return out
}

// RemoveField removes the field with the given id,
// a no-op when the id is not found.
func RemoveField(m *model.Mapping, fieldID string) *model.Mapping {
	out := m.Clone()
	for i, f := range out.Fields {
		if f.ID == fieldID {
			out.Fields = append(out.Fields[:i], out.Fields[i+1:]...)
			break
		}
	}
	return out
}

// UpdateField shallow-merges the patch into the matching field,
// a no-op when the id is not found.
func UpdateField(m *model.Mapping, fieldID string, patch FieldPatch) *model.Mapping {
	out := m.Clone()
	f, _ := out.FieldByID(fieldID)
	if f == nil {
		return out
	}
	if patch.Target != nil {
		f.Target = *patch.Target
	}
	if patch.Type != nil {
		f.Type = *patch.Type
	}
	if patch.Input != nil {
		f.Input = patch.Input
	}
	if patch.CopyTo != nil {
		f.CopyTo = patch.CopyTo
	}
	if patch.IgnoreAbove != nil {
		f.IgnoreAbove = patch.IgnoreAbove
	}
	if patch.NullValue != nil {
		f.NullValue = patch.NullValue
	}
	return out
}

// ReorderFields replaces the fields order by the given permutation of ids.
// Ids missing from the order keep their relative position at the end,
// unknown ids are ignored, so the field set is always preserved exactly.
func ReorderFields(m *model.Mapping, order []string) *model.Mapping {
	out := m.Clone()
	used := make(map[string]bool, len(order))
	fields := make([]*model.Field, 0, len(out.Fields))
	for _, id := range order {
		if used[id] {
			continue
		}
		if f, _ := out.FieldByID(id); f != nil {
			fields = append(fields, f)
			used[id] = true
		}
	}
	for _, f := range out.Fields {
		if !used[f.ID] {
			fields = append(fields, f)
		}
	}
	out.Fields = fields
	return out
}

// MoveField moves a single field from one position to another, preserving
// the relative order of all others. Out-of-range positions are a no-op.
// This is the array move the drag-and-drop layer computes from a gesture.
func MoveField(m *model.Mapping, from, to int) *model.Mapping {
	out := m.Clone()
	if from < 0 || from >= len(out.Fields) || to < 0 || to >= len(out.Fields) {
		return out
	}
	f := out.Fields[from]
	fields := append(out.Fields[:from:from], out.Fields[from+1:]...)
	fields = append(fields[:to:to], append([]*model.Field{f}, fields[to:]...)...)
	out.Fields = fields
	return out
}
