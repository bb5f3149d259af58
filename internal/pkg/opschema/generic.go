package opschema

import (
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

// Generic key=value editing of unknown operation types.
//
// The text form is one "key=value" pair per line. Parsing splits each line
// on the first "=", trims the key and skips malformed lines silently,
// favoring availability over strictness: a half-typed line never rejects
// the whole edit.

// EncodeGeneric serializes an operation's parameters to the editable
// text block, keys sorted for a stable rendering.
func EncodeGeneric(op *model.Operation) string {
	keys := make([]string, 0, len(op.Params))
	for key := range op.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, key := range keys {
		out.WriteString(key)
		out.WriteString("=")
		out.WriteString(cast.ToString(op.Params[key]))
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n")
}

// DecodeGeneric parses the text block back into a parameter set.
func DecodeGeneric(text string) map[string]any {
	out := map[string]any{}
	for _, line := range strings.Split(text, "\n") {
		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			continue
		}
		out[key] = line[eq+1:]
	}
	return out
}
