package diff

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

type AdvancedOptions struct {
	// DetectMove reports a relocated array element as a move instead of
	// a removal plus an insertion.
	DetectMove bool
}

// Delta encoding markers. A changed leaf becomes [old, new], an added leaf
// [new], a removed leaf [old, 0, 0] and a moved array element ["", to, 3].
// An array delta is an object tagged with "_t": "a"; its "N" keys address
// the right side, "_N" keys the left side.
const (
	arrayTypeKey    = "_t"
	arrayTypeMarker = "a"
	markerRemoved   = 0
	markerMoved     = 3
)

// volatileKeys are excluded from comparison by policy, they are noise,
// not semantic content.
var volatileKeys = map[string]bool{ // nolint: gochecknoglobals
	"_id":        true,
	"created_at": true,
	"updated_at": true,
}

// Patch is the result of an Advanced comparison.
// A nil Delta means the documents are equal.
type Patch struct {
	Delta any
}

func (p *Patch) Empty() bool {
	return p == nil || p.Delta == nil
}

// Advanced compares two JSON-like documents into a structural Patch.
//
// Volatile document properties (_id, created_at, updated_at) are excluded.
// Exotic inputs (functions, cyclic references) degrade to an error, the
// function never panics.
func Advanced(left, right any, opts AdvancedOptions) (patch *Patch, err error) {
	defer func() {
		if e := recover(); e != nil {
			patch = nil
			err = errors.Errorf("no diff available: %v", e)
		}
	}()

	d := &differ{opts: opts, visited: map[uintptr]bool{}}
	return &Patch{Delta: d.diffValue(left, right)}, nil
}

type differ struct {
	opts    AdvancedOptions
	visited map[uintptr]bool
}

func (d *differ) diffValue(left, right any) any {
	leftMap, leftIsMap := asStringMap(left)
	rightMap, rightIsMap := asStringMap(right)
	if leftIsMap && rightIsMap {
		return d.inContainer(left, right, func() any {
			return d.diffObject(leftMap, rightMap)
		})
	}

	leftArr, leftIsArr := asSlice(left)
	rightArr, rightIsArr := asSlice(right)
	if leftIsArr && rightIsArr {
		return d.inContainer(left, right, func() any {
			return d.diffArray(leftArr, rightArr)
		})
	}

	if deepEqual(left, right) {
		return nil
	}
	return []any{left, right}
}

// inContainer runs fn with both containers on the visit path,
// a re-entered container means a cycle.
func (d *differ) inContainer(left, right any, fn func() any) any {
	for _, c := range []any{left, right} {
		id := containerID(c)
		if id == 0 {
			continue
		}
		if d.visited[id] {
			panic("cyclic reference")
		}
		d.visited[id] = true
		defer delete(d.visited, id)
	}
	return fn()
}

func (d *differ) diffObject(left, right map[string]any) any {
	delta := map[string]any{}
	for key, leftValue := range left {
		if volatileKeys[key] {
			continue
		}
		rightValue, found := right[key]
		if !found {
			delta[key] = []any{leftValue, markerRemoved, markerRemoved}
			continue
		}
		if child := d.diffValue(leftValue, rightValue); child != nil {
			delta[key] = child
		}
	}
	for key, rightValue := range right {
		if volatileKeys[key] {
			continue
		}
		if _, found := left[key]; !found {
			delta[key] = []any{rightValue}
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func (d *differ) diffArray(left, right []any) any {
	// Trim the common head and tail
	head := 0
	for head < len(left) && head < len(right) && deepEqual(left[head], right[head]) {
		head++
	}
	tail := 0
	for tail < len(left)-head && tail < len(right)-head &&
		deepEqual(left[len(left)-1-tail], right[len(right)-1-tail]) {
		tail++
	}

	delta := map[string]any{}
	leftEnd := len(left) - tail
	rightEnd := len(right) - tail
	rightUsed := make([]bool, len(right))

	// Pass 1: match equal elements, possibly relocated
	leftMatched := make([]bool, len(left))
	for li := head; li < leftEnd; li++ {
		for ri := head; ri < rightEnd; ri++ {
			if rightUsed[ri] || !deepEqual(left[li], right[ri]) {
				continue
			}
			rightUsed[ri] = true
			leftMatched[li] = true
			if li != ri {
				if d.opts.DetectMove {
					delta["_"+strconv.Itoa(li)] = []any{"", ri, markerMoved}
				} else {
					delta["_"+strconv.Itoa(li)] = []any{left[li], markerRemoved, markerRemoved}
					delta[strconv.Itoa(ri)] = []any{right[ri]}
				}
			}
			break
		}
	}

	// Pass 2: same position, both containers, compare in place
	for li := head; li < leftEnd; li++ {
		if leftMatched[li] || li >= rightEnd || rightUsed[li] {
			continue
		}
		if isContainer(left[li]) && isContainer(right[li]) {
			if child := d.diffValue(left[li], right[li]); child != nil {
				delta[strconv.Itoa(li)] = child
			}
			rightUsed[li] = true
			leftMatched[li] = true
		}
	}

	// Pass 3: leftovers are removals and insertions
	for li := head; li < leftEnd; li++ {
		if !leftMatched[li] {
			delta["_"+strconv.Itoa(li)] = []any{left[li], markerRemoved, markerRemoved}
		}
	}
	for ri := head; ri < rightEnd; ri++ {
		if !rightUsed[ri] {
			delta[strconv.Itoa(ri)] = []any{right[ri]}
		}
	}

	if len(delta) == 0 {
		return nil
	}
	delta[arrayTypeKey] = arrayTypeMarker
	return delta
}

func asStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, mk := range rv.MapKeys() {
		out[toStringKey(mk)] = rv.MapIndex(mk).Interface()
	}
	return out, true
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func deepEqual(left, right any) bool {
	return reflect.DeepEqual(left, right)
}

// isArrayDelta reports whether a delta node encodes an array comparison.
func isArrayDelta(node map[string]any) bool {
	marker, found := node[arrayTypeKey]
	return found && marker == arrayTypeMarker
}

// leftIndexKey reports whether an array-delta key addresses the left side.
func leftIndexKey(key string) bool {
	return strings.HasPrefix(key, "_") && key != arrayTypeKey
}
