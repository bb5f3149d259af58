package model

import (
	jsonLib "encoding/json"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

// InputSource kinds.
const (
	InputColumn   = "column"
	InputLiteral  = "literal"
	InputJSONPath = "jsonpath"
)

// InputSource is a tagged union, exactly one variant is active:
// column (Name), literal (Value) or jsonpath (Expr).
type InputSource struct {
	Kind  string
	Name  string // column
	Value any    // literal
	Expr  string // jsonpath
}

func ColumnInput(name string) InputSource {
	return InputSource{Kind: InputColumn, Name: name}
}

func LiteralInput(value any) InputSource {
	return InputSource{Kind: InputLiteral, Value: value}
}

func JSONPathInput(expr string) InputSource {
	return InputSource{Kind: InputJSONPath, Expr: expr}
}

// SwitchKind returns the source converted to another kind.
// The previous variant's payload is discarded and the new variant
// starts from its empty default.
func (s InputSource) SwitchKind(kind string) InputSource {
	if kind == s.Kind {
		return s
	}
	switch kind {
	case InputLiteral:
		return InputSource{Kind: InputLiteral, Value: ""}
	case InputJSONPath:
		return InputSource{Kind: InputJSONPath}
	default:
		return InputSource{Kind: InputColumn}
	}
}

func (s InputSource) MarshalJSON() ([]byte, error) {
	out := map[string]any{"kind": s.Kind}
	switch s.Kind {
	case InputLiteral:
		out["value"] = s.Value
	case InputJSONPath:
		out["expr"] = s.Expr
	default:
		out["name"] = s.Name
	}
	return jsonLib.Marshal(out)
}

func (s *InputSource) UnmarshalJSON(data []byte) error {
	raw := struct {
		Kind  string `json:"kind"`
		Name  string `json:"name"`
		Value any    `json:"value"`
		Expr  string `json:"expr"`
	}{}
	if err := jsonLib.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case InputColumn:
		*s = InputSource{Kind: InputColumn, Name: raw.Name}
	case InputLiteral:
		*s = InputSource{Kind: InputLiteral, Value: raw.Value}
	case InputJSONPath:
		*s = InputSource{Kind: InputJSONPath, Expr: raw.Expr}
	default:
		return errors.Errorf(`unexpected input source kind "%s"`, raw.Kind)
	}
	return nil
}
