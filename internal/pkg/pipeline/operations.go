package pipeline

import (
	"github.com/mappingstudio/mapping-studio/internal/pkg/idgenerator"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

// Two addressing schemes coexist on purpose: the grid editor addresses a
// field's operations by positional index, the drag-and-drop editor by
// operation id. Both behaviors are kept as separate, surface-specific
// contracts, see MoveOperation.

// AddOperation appends an operation of the given type with a fresh id and
// the given parameters to the field's pipeline. A nil parameter value
// means "not set" and never becomes a key, matching UpdateOperation.
func AddOperation(f *model.Field, op string, params map[string]any) *model.Field {
	out := f.Clone()
	operation := &model.Operation{ID: idgenerator.OperationID(), Op: op, Params: map[string]any{}}
	for k, v := range params {
		if v == nil {
			continue
		}
		operation.Params[k] = v
	}
	out.Pipeline = append(out.Pipeline, operation)
	return out
}

// RemoveOperation removes the operation at the given index,
// out-of-range indexes are a no-op.
func RemoveOperation(f *model.Field, index int) *model.Field {
	out := f.Clone()
	if index < 0 || index >= len(out.Pipeline) {
		return out
	}
	out.Pipeline = append(out.Pipeline[:index], out.Pipeline[index+1:]...)
	return out
}

// UpdateOperation merges parameters into the operation at the given index,
// a nil parameter value removes the key. Out-of-range indexes are a no-op.
func UpdateOperation(f *model.Field, index int, params map[string]any) *model.Field {
	out := f.Clone()
	if index < 0 || index >= len(out.Pipeline) {
		return out
	}
	operation := out.Pipeline[index]
	if operation.Params == nil {
		operation.Params = map[string]any{}
	}
	for k, v := range params {
		if v == nil {
			delete(operation.Params, k)
		} else {
			operation.Params[k] = v
		}
	}
	return out
}

// MoveOperation moves the operation with the given id to a new position,
// preserving the relative order of all others. Unknown ids and
// out-of-range positions are a no-op.
func MoveOperation(f *model.Field, opID string, to int) *model.Field {
	out := f.Clone()
	from := -1
	for i, op := range out.Pipeline {
		if op.ID == opID {
			from = i
			break
		}
	}
	if from == -1 || to < 0 || to >= len(out.Pipeline) {
		return out
	}
	op := out.Pipeline[from]
	ops := append(out.Pipeline[:from:from], out.Pipeline[from+1:]...)
	ops = append(ops[:to:to], append([]*model.Operation{op}, ops[to:]...)...)
	out.Pipeline = ops
	return out
}
