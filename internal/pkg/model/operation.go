package model

import (
	jsonLib "encoding/json"
)

// Operation is one transformation step in a field's pipeline.
//
// The wire form is flat: {"id": ..., "op": ..., <parameters...>}.
// Parameters of operation types unknown to this client are preserved
// verbatim in Params, so the client stays forward-compatible with
// operation types introduced server-side later.
type Operation struct {
	ID     string
	Op     string
	Params map[string]any
}

func (o *Operation) Clone() *Operation {
	out := &Operation{ID: o.ID, Op: o.Op}
	if o.Params != nil {
		out.Params = make(map[string]any, len(o.Params))
		data, _ := jsonLib.Marshal(o.Params)
		_ = jsonLib.Unmarshal(data, &out.Params)
	}
	return out
}

// Param returns a parameter value, or nil if not set.
func (o *Operation) Param(name string) any {
	if o.Params == nil {
		return nil
	}
	return o.Params[name]
}

// WithParam returns a copy with one parameter set.
func (o *Operation) WithParam(name string, value any) *Operation {
	out := o.Clone()
	if out.Params == nil {
		out.Params = map[string]any{}
	}
	out.Params[name] = value
	return out
}

func (o Operation) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Params)+2)
	for k, v := range o.Params {
		if k == "id" || k == "op" {
			continue
		}
		out[k] = v
	}
	out["id"] = o.ID
	out["op"] = o.Op
	return jsonLib.Marshal(out)
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := jsonLib.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Operation{Params: map[string]any{}}
	for k, v := range raw {
		switch k {
		case "id":
			o.ID, _ = v.(string)
		case "op":
			o.Op, _ = v.(string)
		default:
			o.Params[k] = v
		}
	}
	return nil
}
