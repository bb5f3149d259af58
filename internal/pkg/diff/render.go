package diff

import (
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cast"

	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
)

// Render returns a human-readable listing of the patch, one block per
// changed leaf, in the local/remote mark style:
//
//	fields.0.type:
//	  - keyword
//	  + text
func (p *Patch) Render() string {
	if p.Empty() {
		return "no differences"
	}
	r := &renderer{
		removed: color.New(color.FgRed).SprintfFunc(),
		added:   color.New(color.FgGreen).SprintfFunc(),
		moved:   color.New(color.FgCyan).SprintfFunc(),
	}
	r.renderNode("", p.Delta)
	return strings.TrimRight(strings.Join(r.lines, "\n"), "\n")
}

type renderer struct {
	lines   []string
	removed func(format string, a ...any) string
	added   func(format string, a ...any) string
	moved   func(format string, a ...any) string
}

func (r *renderer) renderNode(path string, node any) {
	switch v := node.(type) {
	case []any:
		r.renderLeaf(path, v)
	case map[string]any:
		for _, key := range sortedDeltaKeys(v) {
			childPath := key
			if leftIndexKey(key) {
				childPath = strings.TrimPrefix(key, "_")
			}
			r.renderNode(joinPath(path, childPath), v[key])
		}
	}
}

func (r *renderer) renderLeaf(path string, leaf []any) {
	r.lines = append(r.lines, path+":")
	switch {
	case len(leaf) == 1:
		r.lines = append(r.lines, r.added("  + %s", formatValue(leaf[0])))
	case len(leaf) == 2:
		r.lines = append(r.lines, r.removed("  - %s", formatValue(leaf[0])))
		r.lines = append(r.lines, r.added("  + %s", formatValue(leaf[1])))
	case len(leaf) == 3 && (leaf[2] == markerMoved || leaf[2] == float64(markerMoved)):
		r.lines = append(r.lines, r.moved("  > moved to position %s", cast.ToString(leaf[1])))
	default:
		r.lines = append(r.lines, r.removed("  - %s", formatValue(leaf[0])))
	}
}

func sortedDeltaKeys(node map[string]any) []string {
	keys := make([]string, 0, len(node))
	for key := range node {
		if key == arrayTypeKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		ai, aErr := cast.ToIntE(strings.TrimPrefix(a, "_"))
		bi, bErr := cast.ToIntE(strings.TrimPrefix(b, "_"))
		if aErr == nil && bErr == nil && ai != bi {
			return ai < bi
		}
		return a < b
	})
	return keys
}

func formatValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return json.MustEncodeString(v, false)
	case string:
		return cast.ToString(v)
	case nil:
		return "null"
	default:
		return json.MustEncodeString(v, false)
	}
}
