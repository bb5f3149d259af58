package dialog

import (
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/pipeline"
)

// defaultFieldTypes is used when no schema has been fetched yet.
var defaultFieldTypes = []string{"keyword", "text", "integer", "long", "double", "boolean", "date", "object"} // nolint: gochecknoglobals

func (d *Dialogs) fieldTypes() []string {
	if d.schema != nil && len(d.schema.FieldTypes) > 0 {
		return d.schema.FieldTypes
	}
	return defaultFieldTypes
}

func (d *Dialogs) editField(m *model.Mapping, fieldID string) (*model.Mapping, error) {
	f, _ := m.FieldByID(fieldID)
	if f == nil {
		return m, nil
	}

	target, err := d.prompt.Input("Target field name", f.Target)
	if err != nil {
		return m, err
	}

	fieldType, err := d.prompt.Select("Field type", d.fieldTypes(), f.Type)
	if err != nil {
		return m, err
	}

	input, err := d.editInput(f)
	if err != nil {
		return m, err
	}

	m = pipeline.UpdateField(m, fieldID, pipeline.FieldPatch{
		Target: &target,
		Type:   &fieldType,
		Input:  input,
	})

	editPipeline, err := d.prompt.Confirm("Edit the transformation pipeline?", false)
	if err != nil {
		return m, err
	}
	if editPipeline {
		return d.editPipeline(m, fieldID)
	}
	return m, nil
}

// editInput edits the first input source. Switching the kind discards the
// previous payload, see model.InputSource.SwitchKind.
func (d *Dialogs) editInput(f *model.Field) ([]model.InputSource, error) {
	current := model.ColumnInput("")
	if len(f.Input) > 0 {
		current = f.Input[0]
	}

	kind, err := d.prompt.Select("Input source", []string{model.InputColumn, model.InputLiteral, model.InputJSONPath}, current.Kind)
	if err != nil {
		return nil, err
	}
	current = current.SwitchKind(kind)

	switch kind {
	case model.InputLiteral:
		value, err := d.prompt.Input("Literal value", "")
		if err != nil {
			return nil, err
		}
		current.Value = value
	case model.InputJSONPath:
		expr, err := d.prompt.Input("JSONPath expression", current.Expr)
		if err != nil {
			return nil, err
		}
		current.Expr = expr
	default:
		name, err := d.prompt.Input("Column name", current.Name)
		if err != nil {
			return nil, err
		}
		current.Name = name
	}

	out := append([]model.InputSource{}, f.Input...)
	if len(out) == 0 {
		out = []model.InputSource{current}
	} else {
		out[0] = current
	}
	return out, nil
}
