// Package opschema describes the editing rules of pipeline operations:
// which parameters each operation type has, their defaults and validation.
//
// The catalog of operation types is owned by the backend schema and can
// grow, so unknown types are never rejected: they degrade to a generic
// key=value editor, see generic.go.
package opschema

import (
	"github.com/spf13/cast"

	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

// Parameter value kinds.
const (
	KindString = "string"
	KindNumber = "number"
	KindBool   = "bool"
	KindEnum   = "enum"
	KindList   = "list" // list of strings
)

// Param describes a single editable parameter of an operation type.
type Param struct {
	Name    string
	Kind    string
	Enum    []string // for KindEnum
	Default any
}

// Spec describes one known operation type.
type Spec struct {
	Op     string
	Params []Param
}

// Known operation types, in menu order.
func Catalog() []Spec {
	return []Spec{
		{Op: "cast", Params: []Param{
			{Name: "to", Kind: KindEnum, Enum: []string{"number", "boolean", "string", "date"}, Default: "string"},
		}},
		{Op: "regex_replace", Params: []Param{
			{Name: "pattern", Kind: KindString, Default: ""},
			{Name: "replacement", Kind: KindString, Default: ""},
			{Name: "flags", Kind: KindString, Default: ""},
		}},
		{Op: "date_parse", Params: []Param{
			{Name: "formats", Kind: KindList, Default: []any{""}},
			{Name: "assume_tz", Kind: KindString, Default: ""},
		}},
		{Op: "dict", Params: []Param{
			// Enum options come from the external dictionary listing,
			// empty until that list loads.
			{Name: "key", Kind: KindEnum, Enum: nil, Default: ""},
		}},
		{Op: "sort", Params: []Param{
			{Name: "by", Kind: KindString, Default: ""},
			{Name: "order", Kind: KindEnum, Enum: []string{"asc", "desc"}, Default: "asc"},
			{Name: "numeric", Kind: KindBool, Default: false},
		}},
		{Op: "slice", Params: []Param{
			{Name: "start", Kind: KindNumber, Default: 0},
			{Name: "end", Kind: KindNumber, Default: 0},
		}},
		{Op: "filter", Params: []Param{
			{Name: "condition", Kind: KindEnum, Enum: FilterConditions(), Default: "not_empty"},
		}},
		{Op: "unique", Params: []Param{
			{Name: "by", Kind: KindString, Default: ""},
		}},
	}
}

// Lookup returns the spec of a known operation type,
// (nil, false) means the type edits through the generic fallback.
func Lookup(op string) (*Spec, bool) {
	for _, spec := range Catalog() {
		if spec.Op == op {
			return &spec, true
		}
	}
	return nil, false
}

// Defaults returns the default parameter set of an operation type,
// an empty map for unknown types.
func Defaults(op string) map[string]any {
	out := map[string]any{}
	spec, known := Lookup(op)
	if !known {
		return out
	}
	for _, p := range spec.Params {
		out[p.Name] = p.Default
	}
	if op == "filter" {
		seedFilterParams(out, cast.ToString(out["condition"]))
	}
	return out
}

// NewOperation builds an operation of the given type with default
// parameters; the id must be supplied by the caller.
func NewOperation(id, op string) *model.Operation {
	return &model.Operation{ID: id, Op: op, Params: Defaults(op)}
}

// Validate checks an operation's parameters against its spec.
// Issues are returned as plain strings, an unknown operation type is
// never an issue by itself.
func Validate(op *model.Operation) []string {
	var issues []string
	spec, known := Lookup(op.Op)
	if !known {
		return nil
	}
	for _, p := range spec.Params {
		value, found := op.Params[p.Name]
		if !found {
			continue
		}
		switch p.Kind {
		case KindEnum:
			if len(p.Enum) == 0 {
				continue
			}
			v := cast.ToString(value)
			if v != "" && !contains(p.Enum, v) {
				issues = append(issues, `unexpected value "`+v+`" of parameter "`+p.Name+`"`)
			}
		case KindNumber:
			if _, err := cast.ToFloat64E(value); err != nil {
				issues = append(issues, `parameter "`+p.Name+`" must be a number`)
			}
		case KindBool:
			if _, err := cast.ToBoolE(value); err != nil {
				issues = append(issues, `parameter "`+p.Name+`" must be a boolean`)
			}
		case KindList:
			if _, err := cast.ToStringSliceE(value); err != nil {
				issues = append(issues, `parameter "`+p.Name+`" must be a list`)
			}
		}
	}
	if op.Op == "filter" {
		issues = append(issues, validateFilter(op)...)
	}
	if op.Op == "date_parse" {
		if formats, _ := cast.ToStringSliceE(op.Params["formats"]); len(formats) == 0 {
			issues = append(issues, `parameter "formats" must not be empty`)
		}
	}
	return issues
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
