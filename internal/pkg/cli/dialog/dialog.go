// Package dialog is the interactive mapping editor: it renders fields and
// pipeline operations as prompts and emits mutation intents to the
// pipeline package. It never mutates a snapshot directly, every change
// produces a new one.
package dialog

import (
	"fmt"

	"github.com/mappingstudio/mapping-studio/internal/pkg/cli/prompt"
	"github.com/mappingstudio/mapping-studio/internal/pkg/log"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/pipeline"
	"github.com/mappingstudio/mapping-studio/internal/pkg/schema"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const (
	actionAddField    = "Add field"
	actionEditField   = "Edit field"
	actionRemoveField = "Remove field"
	actionMoveField   = "Move field"
	actionDone        = "Done"
)

type Dialogs struct {
	prompt prompt.Prompt
	logger log.Logger
	schema *schema.Info // optional, source of the field type catalog
}

func New(p prompt.Prompt, logger log.Logger, schemaInfo *schema.Info) *Dialogs {
	return &Dialogs{prompt: p, logger: logger, schema: schemaInfo}
}

// EditMapping runs the editor loop and returns the final snapshot.
// The input snapshot is never modified.
func (d *Dialogs) EditMapping(m *model.Mapping) (*model.Mapping, error) {
	current := m
	for {
		action, err := d.prompt.Select(
			fmt.Sprintf("Mapping %q, %d fields", current.Name, len(current.Fields)),
			[]string{actionAddField, actionEditField, actionRemoveField, actionMoveField, actionDone},
			actionDone,
		)
		if err != nil {
			return nil, err
		}

		switch action {
		case actionAddField:
			current = pipeline.AddField(current)
			added := current.Fields[len(current.Fields)-1]
			current, err = d.editField(current, added.ID)
		case actionEditField:
			fieldID := ""
			fieldID, err = d.selectField(current)
			if err == nil && fieldID != "" {
				current, err = d.editField(current, fieldID)
			}
		case actionRemoveField:
			fieldID := ""
			fieldID, err = d.selectField(current)
			if err == nil && fieldID != "" {
				current = pipeline.RemoveField(current, fieldID)
			}
		case actionMoveField:
			current, err = d.moveField(current)
		case actionDone:
			return current, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (d *Dialogs) selectField(m *model.Mapping) (string, error) {
	if len(m.Fields) == 0 {
		d.logger.Warn("the mapping has no fields")
		return "", nil
	}
	labels := make([]string, len(m.Fields))
	byLabel := make(map[string]string, len(m.Fields))
	for i, f := range m.Fields {
		labels[i] = fieldLabel(i, f)
		byLabel[labels[i]] = f.ID
	}
	label, err := d.prompt.Select("Field", labels, labels[0])
	if err != nil {
		return "", err
	}
	return byLabel[label], nil
}

// moveField is the keyboard analogue of a drag gesture: one field moves
// from its position to a new one, all others keep their relative order.
func (d *Dialogs) moveField(m *model.Mapping) (*model.Mapping, error) {
	fieldID, err := d.selectField(m)
	if err != nil || fieldID == "" {
		return m, err
	}
	_, from := m.FieldByID(fieldID)

	positions := make([]string, len(m.Fields))
	for i := range m.Fields {
		positions[i] = fmt.Sprintf("%d", i+1)
	}
	position, err := d.prompt.Select("New position", positions, positions[from])
	if err != nil {
		return m, err
	}
	to := 0
	if _, err := fmt.Sscanf(position, "%d", &to); err != nil {
		return m, errors.PrefixError(err, "unexpected position")
	}
	return pipeline.MoveField(m, from, to-1), nil
}

func fieldLabel(index int, f *model.Field) string {
	target := f.Target
	if target == "" {
		target = "<empty>"
	}
	return fmt.Sprintf("%d. %s (%s)", index+1, target, f.Type)
}
