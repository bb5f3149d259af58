package opschema

import (
	"github.com/spf13/cast"

	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

// The filter operation is a small state machine: the visible sub-fields
// depend on the selected condition. Switching the condition drops the
// irrelevant parameters and seeds the relevant ones with empty defaults.

func FilterConditions() []string {
	return []string{"not_empty", "equals", "contains", "regex", "range"}
}

// FilterConditionParams returns the sub-parameters of a filter condition.
func FilterConditionParams(condition string) []string {
	switch condition {
	case "equals", "contains", "regex":
		return []string{"value"}
	case "range":
		return []string{"min", "max"}
	default:
		return nil
	}
}

// SwitchFilterCondition returns a copy of the operation with the condition
// changed and its parameter set normalized to that condition.
func SwitchFilterCondition(op *model.Operation, condition string) *model.Operation {
	out := op.Clone()
	if out.Params == nil {
		out.Params = map[string]any{}
	}
	out.Params["condition"] = condition
	for _, name := range []string{"value", "min", "max"} {
		delete(out.Params, name)
	}
	seedFilterParams(out.Params, condition)
	return out
}

func seedFilterParams(params map[string]any, condition string) {
	for _, name := range FilterConditionParams(condition) {
		if _, found := params[name]; !found {
			params[name] = ""
		}
	}
}

func validateFilter(op *model.Operation) []string {
	var issues []string
	condition := cast.ToString(op.Params["condition"])
	relevant := map[string]bool{"condition": true}
	for _, name := range FilterConditionParams(condition) {
		relevant[name] = true
	}
	for _, name := range []string{"value", "min", "max"} {
		if _, found := op.Params[name]; found && !relevant[name] {
			issues = append(issues, `parameter "`+name+`" is not used by condition "`+condition+`"`)
		}
	}
	return issues
}
