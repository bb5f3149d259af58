package dialog

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/opschema"
	"github.com/mappingstudio/mapping-studio/internal/pkg/pipeline"
)

const (
	actionAddOperation    = "Add operation"
	actionEditOperation   = "Edit operation"
	actionRemoveOperation = "Remove operation"
	actionMoveOperation   = "Move operation"
	actionBack            = "Back"

	otherOperation = "other…"
)

func (d *Dialogs) editPipeline(m *model.Mapping, fieldID string) (*model.Mapping, error) {
	for {
		f, _ := m.FieldByID(fieldID)
		if f == nil {
			return m, nil
		}

		action, err := d.prompt.Select(
			fmt.Sprintf("Pipeline, %d operations", len(f.Pipeline)),
			[]string{actionAddOperation, actionEditOperation, actionRemoveOperation, actionMoveOperation, actionBack},
			actionBack,
		)
		if err != nil {
			return m, err
		}

		switch action {
		case actionAddOperation:
			m, err = d.addOperation(m, fieldID)
		case actionEditOperation:
			m, err = d.editOperation(m, fieldID)
		case actionRemoveOperation:
			// The grid surface addresses operations by position
			index := -1
			index, err = d.selectOperationIndex(f)
			if err == nil && index >= 0 {
				m = replaceField(m, fieldID, pipeline.RemoveOperation(f, index))
			}
		case actionMoveOperation:
			m, err = d.moveOperation(m, fieldID)
		case actionBack:
			return m, nil
		}
		if err != nil {
			return m, err
		}
	}
}

func (d *Dialogs) addOperation(m *model.Mapping, fieldID string) (*model.Mapping, error) {
	f, _ := m.FieldByID(fieldID)

	names := []string{}
	for _, spec := range opschema.Catalog() {
		names = append(names, spec.Op)
	}
	names = append(names, otherOperation)

	op, err := d.prompt.Select("Operation type", names, names[0])
	if err != nil {
		return m, err
	}
	if op == otherOperation {
		op, err = d.prompt.Input("Operation type name", "")
		if err != nil {
			return m, err
		}
	}

	params, err := d.editOperationParams(&model.Operation{Op: op, Params: opschema.Defaults(op)})
	if err != nil {
		return m, err
	}
	return replaceField(m, fieldID, pipeline.AddOperation(f, op, params)), nil
}

func (d *Dialogs) editOperation(m *model.Mapping, fieldID string) (*model.Mapping, error) {
	f, _ := m.FieldByID(fieldID)
	index, err := d.selectOperationIndex(f)
	if err != nil || index < 0 {
		return m, err
	}

	params, err := d.editOperationParams(f.Pipeline[index])
	if err != nil {
		return m, err
	}
	return replaceField(m, fieldID, pipeline.UpdateOperation(f, index, params)), nil
}

// moveOperation addresses the operation by id, the drag surface contract.
func (d *Dialogs) moveOperation(m *model.Mapping, fieldID string) (*model.Mapping, error) {
	f, _ := m.FieldByID(fieldID)
	index, err := d.selectOperationIndex(f)
	if err != nil || index < 0 {
		return m, err
	}
	opID := f.Pipeline[index].ID

	positions := make([]string, len(f.Pipeline))
	for i := range f.Pipeline {
		positions[i] = fmt.Sprintf("%d", i+1)
	}
	position, err := d.prompt.Select("New position", positions, positions[index])
	if err != nil {
		return m, err
	}
	return replaceField(m, fieldID, pipeline.MoveOperation(f, opID, cast.ToInt(position)-1)), nil
}

func (d *Dialogs) selectOperationIndex(f *model.Field) (int, error) {
	if len(f.Pipeline) == 0 {
		d.logger.Warn("the pipeline is empty")
		return -1, nil
	}
	labels := make([]string, len(f.Pipeline))
	for i, op := range f.Pipeline {
		labels[i] = fmt.Sprintf("%d. %s", i+1, op.Op)
	}
	label, err := d.prompt.Select("Operation", labels, labels[0])
	if err != nil {
		return -1, err
	}
	return cast.ToInt(strings.SplitN(label, ".", 2)[0]) - 1, nil
}

// editOperationParams prompts parameter values: known operation types get
// typed prompts from the catalog, unknown types degrade to the generic
// key=value text block, parsed on submit, so a half-typed line never
// rejects the whole edit.
func (d *Dialogs) editOperationParams(op *model.Operation) (map[string]any, error) {
	spec, known := opschema.Lookup(op.Op)
	if !known {
		text, err := d.prompt.Multiline("Parameters (key=value per line)", opschema.EncodeGeneric(op))
		if err != nil {
			return nil, err
		}
		return opschema.DecodeGeneric(text), nil
	}

	out := map[string]any{}
	for _, param := range spec.Params {
		value, err := d.editParam(op, param)
		if err != nil {
			return nil, err
		}
		out[param.Name] = value

		// The filter condition decides which sub-parameters exist
		if op.Op == "filter" && param.Name == "condition" {
			condition := cast.ToString(value)
			switched := opschema.SwitchFilterCondition(op, condition)
			for _, name := range opschema.FilterConditionParams(condition) {
				sub, err := d.prompt.Input(name, cast.ToString(switched.Param(name)))
				if err != nil {
					return nil, err
				}
				out[name] = sub
			}
			for _, name := range []string{"value", "min", "max"} {
				if _, relevant := out[name]; !relevant {
					out[name] = nil // dropped on update
				}
			}
		}
	}
	return out, nil
}

func (d *Dialogs) editParam(op *model.Operation, param opschema.Param) (any, error) {
	current := op.Param(param.Name)
	if current == nil {
		current = param.Default
	}

	switch param.Kind {
	case opschema.KindEnum:
		if len(param.Enum) == 0 {
			// Options come from an external listing that has not loaded
			return d.prompt.Input(param.Name, cast.ToString(current))
		}
		return d.prompt.Select(param.Name, param.Enum, cast.ToString(current))
	case opschema.KindBool:
		return d.prompt.Confirm(param.Name, cast.ToBool(current))
	case opschema.KindNumber:
		raw, err := d.prompt.Input(param.Name, cast.ToString(current))
		if err != nil {
			return nil, err
		}
		if number, err := cast.ToFloat64E(raw); err == nil {
			return number, nil
		}
		return raw, nil // opschema.Validate reports the issue
	case opschema.KindList:
		text, err := d.prompt.Multiline(param.Name+" (one per line)", strings.Join(cast.ToStringSlice(current), "\n"))
		if err != nil {
			return nil, err
		}
		items := []any{}
		for _, line := range strings.Split(text, "\n") {
			items = append(items, line)
		}
		return items, nil
	default:
		return d.prompt.Input(param.Name, cast.ToString(current))
	}
}

func replaceField(m *model.Mapping, fieldID string, f *model.Field) *model.Mapping {
	out := m.Clone()
	for i, existing := range out.Fields {
		if existing.ID == fieldID {
			out.Fields[i] = f
			break
		}
	}
	return out
}
