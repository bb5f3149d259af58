package pipeline

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

func testMapping() *model.Mapping {
	return &model.Mapping{
		Name:    "demo",
		Version: "1",
		Fields: []*model.Field{
			{ID: "f1", Target: "title", Type: "text", Input: []model.InputSource{model.ColumnInput("title")}},
			{ID: "f2", Target: "price", Type: "double", Input: []model.InputSource{model.ColumnInput("price")}},
			{ID: "f3", Target: "tags", Type: "keyword", Input: []model.InputSource{model.ColumnInput("tags")}},
		},
	}
}

func TestAddField(t *testing.T) {
	t.Parallel()
	m := testMapping()
	out := AddField(m)

	// New snapshot, original untouched
	assert.Len(t, m.Fields, 3)
	require.Len(t, out.Fields, 4)

	added := out.Fields[3]
	assert.NotEmpty(t, added.ID)
	assert.Empty(t, added.Target)
	assert.Equal(t, DefaultFieldType, added.Type)
	assert.Equal(t, []model.InputSource{model.ColumnInput("")}, added.Input)
	assert.Empty(t, added.Pipeline)

	// Ids are unique across repeated adds
	out2 := AddField(out)
	ids := map[string]bool{}
	for _, f := range out2.Fields {
		assert.False(t, ids[f.ID])
		ids[f.ID] = true
	}
}

func TestRemoveField(t *testing.T) {
	t.Parallel()
	m := testMapping()
	out := RemoveField(m, "f2")
	assert.Equal(t, []string{"f1", "f3"}, out.FieldIDs())
	assert.Len(t, m.Fields, 3)

	// Unknown id is a no-op
	out = RemoveField(m, "missing")
	assert.Equal(t, m, out)
}

func TestUpdateField(t *testing.T) {
	t.Parallel()
	m := testMapping()
	target := "headline"
	out := UpdateField(m, "f1", FieldPatch{Target: &target})

	f, _ := out.FieldByID("f1")
	assert.Equal(t, "headline", f.Target)
	assert.Equal(t, "text", f.Type) // untouched
	original, _ := m.FieldByID("f1")
	assert.Equal(t, "title", original.Target)

	// Unknown id is a no-op
	assert.Equal(t, m, UpdateField(m, "missing", FieldPatch{Target: &target}))
}

func TestReorderFieldsPreservesSet(t *testing.T) {
	t.Parallel()
	m := testMapping()
	out := ReorderFields(m, []string{"f3", "f1", "f2"})
	assert.Equal(t, []string{"f3", "f1", "f2"}, out.FieldIDs())

	// Set membership is preserved, content unchanged
	sortedBefore := append([]string(nil), m.FieldIDs()...)
	sortedAfter := append([]string(nil), out.FieldIDs()...)
	sort.Strings(sortedBefore)
	sort.Strings(sortedAfter)
	assert.Equal(t, sortedBefore, sortedAfter)
	for _, id := range m.FieldIDs() {
		before, _ := m.FieldByID(id)
		after, _ := out.FieldByID(id)
		assert.Equal(t, before, after)
	}
}

func TestReorderFieldsPartialOrder(t *testing.T) {
	t.Parallel()
	m := testMapping()
	// Unknown ids ignored, missing ids keep relative order at the end
	out := ReorderFields(m, []string{"f2", "ghost", "f2"})
	assert.Equal(t, []string{"f2", "f1", "f3"}, out.FieldIDs())
}

func TestMoveField(t *testing.T) {
	t.Parallel()
	m := testMapping()
	out := MoveField(m, 0, 2)
	assert.Equal(t, []string{"f2", "f3", "f1"}, out.FieldIDs())

	out = MoveField(m, 2, 0)
	assert.Equal(t, []string{"f3", "f1", "f2"}, out.FieldIDs())

	// Out of range is a no-op
	assert.Equal(t, m, MoveField(m, 0, 5))
	assert.Equal(t, m, MoveField(m, -1, 0))
}

func TestAddRemoveOperationRestoresPipeline(t *testing.T) {
	t.Parallel()
	f := &model.Field{
		ID:   "f1",
		Type: "text",
		Pipeline: []*model.Operation{
			{ID: "o1", Op: "cast", Params: map[string]any{"to": "string"}},
		},
	}

	withOp := AddOperation(f, "sort", map[string]any{"order": "asc"})
	require.Len(t, withOp.Pipeline, 2)
	assert.NotEmpty(t, withOp.Pipeline[1].ID)
	assert.NotEqual(t, "o1", withOp.Pipeline[1].ID)

	restored := RemoveOperation(withOp, 1)
	assert.Equal(t, f.Pipeline, restored.Pipeline)
}

func TestAddOperationSkipsUnsetParams(t *testing.T) {
	t.Parallel()
	f := &model.Field{ID: "f1", Type: "text"}

	// A nil value means "not set", it must not become a null parameter
	out := AddOperation(f, "filter", map[string]any{
		"condition": "not_empty",
		"value":     nil,
		"min":       nil,
		"max":       nil,
	})
	require.Len(t, out.Pipeline, 1)
	assert.Equal(t, map[string]any{"condition": "not_empty"}, out.Pipeline[0].Params)
}

func TestUpdateOperation(t *testing.T) {
	t.Parallel()
	f := &model.Field{
		ID: "f1",
		Pipeline: []*model.Operation{
			{ID: "o1", Op: "slice", Params: map[string]any{"start": "0", "end": "5"}},
		},
	}
	out := UpdateOperation(f, 0, map[string]any{"end": "10", "start": nil})
	assert.Equal(t, map[string]any{"end": "10"}, out.Pipeline[0].Params)
	assert.Equal(t, map[string]any{"start": "0", "end": "5"}, f.Pipeline[0].Params)

	// Out of range is a no-op
	assert.Equal(t, f, UpdateOperation(f, 5, map[string]any{"x": "1"}))
}

func TestMoveOperationByID(t *testing.T) {
	t.Parallel()
	f := &model.Field{
		ID: "f1",
		Pipeline: []*model.Operation{
			{ID: "o1", Op: "cast", Params: map[string]any{}},
			{ID: "o2", Op: "sort", Params: map[string]any{}},
			{ID: "o3", Op: "unique", Params: map[string]any{}},
		},
	}
	out := MoveOperation(f, "o3", 0)
	ids := []string{out.Pipeline[0].ID, out.Pipeline[1].ID, out.Pipeline[2].ID}
	assert.Equal(t, []string{"o3", "o1", "o2"}, ids)

	// Unknown id is a no-op
	assert.Equal(t, f, MoveOperation(f, "ghost", 0))
}
