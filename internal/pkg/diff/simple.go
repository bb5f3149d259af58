package diff

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

type SimpleOptions struct {
	// IncludeUnchanged emits an Unchanged result for equal leaf values.
	IncludeUnchanged bool
}

// Simple compares two JSON-like documents and returns one Result per
// changed leaf path.
//
// Objects are compared by key, arrays positionally ("fields.0", "fields.1",
// ...). Arrays are intentionally not matched by content: inserting an
// element in the middle is reported as a cascade of modified positions,
// never as a move. Self-referential inputs are tolerated, the walk skips
// any container already on the current visit path.
//
// Simple never panics on JSON-compatible input; any internal failure is
// returned as an error with a nil result.
func Simple(left, right any, opts SimpleOptions) (results []Result, err error) {
	defer func() {
		if e := recover(); e != nil {
			results = nil
			err = errors.Errorf("no diff available: %v", e)
		}
	}()

	w := &simpleWalker{
		opts:         opts,
		visitedLeft:  map[uintptr]bool{},
		visitedRight: map[uintptr]bool{},
	}
	if isContainer(left) && isContainer(right) {
		w.enter(left, right)
		w.walk("", left, right)
	} else {
		w.compareLeaf("", left, right)
	}
	return w.results, nil
}

type simpleWalker struct {
	opts    SimpleOptions
	results []Result
	// Containers on the current visit path, tracked per side: the same
	// container may legitimately appear on both sides at once.
	visitedLeft  map[uintptr]bool
	visitedRight map[uintptr]bool
}

func (w *simpleWalker) walk(path string, left, right any) {
	leftEntries, leftKeys := containerEntries(left)
	rightEntries, rightKeys := containerEntries(right)

	// Keys present only in right
	for _, key := range rightKeys {
		if _, found := leftEntries[key]; !found {
			w.emit(Result{Type: Added, Path: joinPath(path, key), NewValue: rightEntries[key]})
		}
	}

	// Keys present only in left
	for _, key := range leftKeys {
		if _, found := rightEntries[key]; !found {
			w.emit(Result{Type: Removed, Path: joinPath(path, key), OldValue: leftEntries[key]})
		}
	}

	// Keys present in both
	for _, key := range leftKeys {
		rightValue, found := rightEntries[key]
		if !found {
			continue
		}
		leftValue := leftEntries[key]
		childPath := joinPath(path, key)
		if isContainer(leftValue) && isContainer(rightValue) {
			if w.enter(leftValue, rightValue) {
				w.walk(childPath, leftValue, rightValue)
				w.leave(leftValue, rightValue)
			}
		} else {
			w.compareLeaf(childPath, leftValue, rightValue)
		}
	}
}

func (w *simpleWalker) compareLeaf(path string, left, right any) {
	if leafEqual(left, right) {
		if w.opts.IncludeUnchanged {
			w.emit(Result{Type: Unchanged, Path: path, OldValue: left, NewValue: right})
		}
	} else {
		w.emit(Result{Type: Modified, Path: path, OldValue: left, NewValue: right})
	}
}

func (w *simpleWalker) emit(r Result) {
	w.results = append(w.results, r)
}

// enter registers the pair on the visit path, false when either side is
// already on its own path and the pair must be skipped.
func (w *simpleWalker) enter(left, right any) bool {
	leftID, rightID := containerID(left), containerID(right)
	if w.visitedLeft[leftID] || w.visitedRight[rightID] {
		return false
	}
	if leftID != 0 {
		w.visitedLeft[leftID] = true
	}
	if rightID != 0 {
		w.visitedRight[rightID] = true
	}
	return true
}

func (w *simpleWalker) leave(left, right any) {
	delete(w.visitedLeft, containerID(left))
	delete(w.visitedRight, containerID(right))
}

// leafEqual is a strict shallow comparison. It is only called for values
// that were not both containers, so deep equality is not needed here:
// a container compared against a scalar (or a container of another kind)
// is never equal.
func leafEqual(left, right any) bool {
	if isContainer(left) || isContainer(right) {
		return false
	}
	return left == right
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// containerEntries flattens a container to key=>value entries and
// a deterministic key order: sorted for objects, positional for arrays.
func containerEntries(v any) (map[string]any, []string) {
	entries := map[string]any{}
	var keys []string
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		for _, mk := range rv.MapKeys() {
			key := toStringKey(mk)
			entries[key] = rv.MapIndex(mk).Interface()
			keys = append(keys, key)
		}
		sort.Strings(keys)
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			key := strconv.Itoa(i)
			entries[key] = rv.Index(i).Interface()
			keys = append(keys, key)
		}
	}
	return entries, keys
}

func toStringKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.Kind() == reflect.Interface {
		return toStringKey(k.Elem())
	}
	return k.String()
}

func containerID(v any) uintptr {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0
		}
		return rv.Pointer()
	default:
		return 0
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
