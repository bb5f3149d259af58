package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappingstudio/mapping-studio/internal/pkg/log"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/opschema"
)

// scriptedPrompt answers prompts from a fixed queue, in order.
type scriptedPrompt struct {
	t       *testing.T
	answers []any
}

func (p *scriptedPrompt) next(label string) any {
	require.NotEmptyf(p.t, p.answers, "unexpected prompt %q", label)
	out := p.answers[0]
	p.answers = p.answers[1:]
	return out
}

func (p *scriptedPrompt) Select(label string, options []string, defaultValue string) (string, error) {
	answer := p.next(label).(string)
	assert.Containsf(p.t, options, answer, "prompt %q", label)
	return answer, nil
}

func (p *scriptedPrompt) Input(label string, defaultValue string) (string, error) {
	return p.next(label).(string), nil
}

func (p *scriptedPrompt) Confirm(label string, defaultValue bool) (bool, error) {
	return p.next(label).(bool), nil
}

func (p *scriptedPrompt) Multiline(label string, defaultValue string) (string, error) {
	return p.next(label).(string), nil
}

func newTestDialogs(t *testing.T, answers ...any) (*Dialogs, *scriptedPrompt) {
	t.Helper()
	p := &scriptedPrompt{t: t, answers: answers}
	return New(p, log.NewMemoryLogger(), nil), p
}

func TestEditMappingAddField(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionAddField,
		"price",           // target
		"double",          // type
		model.InputColumn, // input kind
		"raw_price",       // column name
		false,             // edit pipeline?
		actionDone,
	)

	original := &model.Mapping{Name: "products", Version: "1"}
	out, err := d.EditMapping(original)
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	// Original snapshot is untouched
	assert.Empty(t, original.Fields)

	require.Len(t, out.Fields, 1)
	f := out.Fields[0]
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "price", f.Target)
	assert.Equal(t, "double", f.Type)
	require.Len(t, f.Input, 1)
	assert.Equal(t, model.ColumnInput("raw_price"), f.Input[0])
	assert.Empty(t, f.Pipeline)
}

func TestEditMappingAddOperation(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionEditField,
		"1. price (double)", // field
		"price",             // target unchanged
		"double",            // type unchanged
		model.InputColumn,   // input kind
		"raw_price",         // column name
		true,                // edit pipeline?
		actionAddOperation,
		"cast",   // operation type
		"number", // to
		actionBack,
		actionDone,
	)

	original := testMapping()
	out, err := d.EditMapping(original)
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	f, _ := out.FieldByID("F1")
	require.NotNil(t, f)
	require.Len(t, f.Pipeline, 1)
	op := f.Pipeline[0]
	assert.NotEmpty(t, op.ID)
	assert.Equal(t, "cast", op.Op)
	assert.Equal(t, map[string]any{"to": "number"}, op.Params)

	// Original snapshot is untouched
	f, _ = original.FieldByID("F1")
	assert.Empty(t, f.Pipeline)
}

func TestEditPipelineMoveOperation(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionMoveOperation,
		"2. lowercase", // which operation
		"1",            // new position
		actionBack,
	)

	m := testMapping()
	f, _ := m.FieldByID("F1")
	f.Pipeline = []*model.Operation{
		{ID: "O1", Op: "trim"},
		{ID: "O2", Op: "lowercase"},
	}

	out, err := d.editPipeline(m, "F1")
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	f, _ = out.FieldByID("F1")
	require.Len(t, f.Pipeline, 2)
	assert.Equal(t, "O2", f.Pipeline[0].ID)
	assert.Equal(t, "O1", f.Pipeline[1].ID)
}

func TestEditPipelineGenericParams(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionEditOperation,
		"1. lookup_geoip", // which operation
		"database=cities\nsource=ip",
		actionBack,
	)

	m := testMapping()
	f, _ := m.FieldByID("F1")
	f.Pipeline = []*model.Operation{
		{ID: "O1", Op: "lookup_geoip", Params: map[string]any{"database": "countries"}},
	}

	out, err := d.editPipeline(m, "F1")
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	f, _ = out.FieldByID("F1")
	op := f.Pipeline[0]
	assert.Equal(t, "lookup_geoip", op.Op)
	assert.Equal(t, map[string]any{"database": "cities", "source": "ip"}, op.Params)
}

func TestEditPipelineFilterConditionSwitch(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionEditOperation,
		"1. filter",
		"range", // condition
		"10",    // min
		"99",    // max
		actionBack,
	)

	m := testMapping()
	f, _ := m.FieldByID("F1")
	f.Pipeline = []*model.Operation{
		{ID: "O1", Op: "filter", Params: map[string]any{"condition": "equals", "value": "x"}},
	}

	out, err := d.editPipeline(m, "F1")
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	f, _ = out.FieldByID("F1")
	op := f.Pipeline[0]
	assert.Equal(t, "range", op.Param("condition"))
	assert.Equal(t, "10", op.Param("min"))
	assert.Equal(t, "99", op.Param("max"))
	// The equals payload must not survive the switch
	assert.Nil(t, op.Param("value"))
}

// A freshly added filter must only carry the parameters of its condition,
// never null placeholders for the other conditions' sub-parameters.
func TestEditPipelineAddFilterOperation(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionAddOperation,
		"filter",
		"not_empty", // condition, no sub-parameters
		actionBack,
	)

	out, err := d.editPipeline(testMapping(), "F1")
	require.NoError(t, err)
	assert.Empty(t, p.answers)

	f, _ := out.FieldByID("F1")
	require.Len(t, f.Pipeline, 1)
	op := f.Pipeline[0]
	assert.Equal(t, "filter", op.Op)
	assert.Equal(t, map[string]any{"condition": "not_empty"}, op.Params)
	assert.Empty(t, opschema.Validate(op))
}

func TestEditMappingMoveField(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionMoveField,
		"2. qty (integer)", // which field
		"1",                // new position
		actionDone,
	)

	m := testMapping()
	m.Fields = append(m.Fields, &model.Field{ID: "F2", Target: "qty", Type: "integer"})

	out, err := d.EditMapping(m)
	require.NoError(t, err)
	assert.Empty(t, p.answers)
	assert.Equal(t, []string{"F2", "F1"}, out.FieldIDs())
}

func TestSelectFieldEmptyMapping(t *testing.T) {
	t.Parallel()

	d, p := newTestDialogs(t,
		actionEditField,
		actionDone,
	)

	out, err := d.EditMapping(&model.Mapping{Name: "empty", Version: "1"})
	require.NoError(t, err)
	assert.Empty(t, p.answers)
	assert.Empty(t, out.Fields)
}

func testMapping() *model.Mapping {
	return &model.Mapping{
		Name:    "products",
		Version: "1",
		Fields: []*model.Field{
			{
				ID:     "F1",
				Target: "price",
				Type:   "double",
				Input:  []model.InputSource{model.ColumnInput("raw_price")},
			},
		},
	}
}
