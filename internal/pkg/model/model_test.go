package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
)

func testMapping() *Mapping {
	return &Mapping{
		Name:    "demo",
		Version: "1",
		Fields: []*Field{
			{
				ID:     "f1",
				Target: "title",
				Type:   "text",
				Input:  []InputSource{ColumnInput("title")},
				Pipeline: []*Operation{
					{ID: "o1", Op: "cast", Params: map[string]any{"to": "string"}},
				},
			},
			{
				ID:     "f2",
				Target: "price",
				Type:   "double",
				Input:  []InputSource{ColumnInput("price")},
			},
		},
	}
}

func TestMappingClone(t *testing.T) {
	t.Parallel()
	m := testMapping()
	clone := m.Clone()
	assert.Equal(t, m, clone)

	// A clone is fully detached
	clone.Fields[0].Target = "changed"
	clone.Fields[0].Pipeline[0].Params["to"] = "number"
	assert.Equal(t, "title", m.Fields[0].Target)
	assert.Equal(t, "string", m.Fields[0].Pipeline[0].Params["to"])
}

func TestMappingFieldByID(t *testing.T) {
	t.Parallel()
	m := testMapping()
	f, index := m.FieldByID("f2")
	require.NotNil(t, f)
	assert.Equal(t, 1, index)
	assert.Equal(t, "price", f.Target)

	f, index = m.FieldByID("missing")
	assert.Nil(t, f)
	assert.Equal(t, -1, index)
}

func TestOperationJSONRoundTrip(t *testing.T) {
	t.Parallel()
	op := &Operation{ID: "o1", Op: "regex_replace", Params: map[string]any{
		"pattern":     "a+",
		"replacement": "b",
		"flags":       "gi",
	}}

	data := json.MustEncode(op, false)
	decoded := &Operation{}
	json.MustDecode(data, decoded)
	assert.Equal(t, op, decoded)
}

func TestOperationJSONUnknownOp(t *testing.T) {
	t.Parallel()
	// Unknown operation types round-trip verbatim
	in := `{"id":"o9","op":"frobnicate","level":"max","dry":true}`
	op := &Operation{}
	json.MustDecode([]byte(in), op)
	assert.Equal(t, "frobnicate", op.Op)
	assert.Equal(t, map[string]any{"level": "max", "dry": true}, op.Params)

	decoded := &Operation{}
	json.MustDecode(json.MustEncode(op, false), decoded)
	assert.Equal(t, op, decoded)
}

func TestInputSourceSwitchKind(t *testing.T) {
	t.Parallel()
	s := ColumnInput("title")
	assert.Equal(t, s, s.SwitchKind(InputColumn))

	lit := s.SwitchKind(InputLiteral)
	assert.Equal(t, InputSource{Kind: InputLiteral, Value: ""}, lit)

	// Switching back does not restore the old payload
	back := lit.SwitchKind(InputColumn)
	assert.Equal(t, InputSource{Kind: InputColumn}, back)
}

func TestInputSourceJSON(t *testing.T) {
	t.Parallel()
	cases := []InputSource{
		ColumnInput("title"),
		LiteralInput("n/a"),
		JSONPathInput("$.items[0].name"),
	}
	for _, s := range cases {
		data := json.MustEncode(s, false)
		decoded := InputSource{}
		json.MustDecode(data, &decoded)
		assert.Equal(t, s, decoded)
	}

	err := json.DecodeString(`{"kind":"cosmic"}`, &InputSource{})
	assert.ErrorContains(t, err, `unexpected input source kind "cosmic"`)
}

func TestMappingFingerprint(t *testing.T) {
	t.Parallel()
	m := testMapping()
	fp1, err := m.Fingerprint()
	require.NoError(t, err)

	fp2, err := m.Clone().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)

	changed := m.Clone()
	changed.Fields[1].Target = "amount"
	fp3, err := changed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}
