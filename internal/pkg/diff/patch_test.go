package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvancedEqual(t *testing.T) {
	t.Parallel()
	left := map[string]any{"a": 1, "b": []any{"x", "y"}}
	right := map[string]any{"a": 1, "b": []any{"x", "y"}}

	patch, err := Advanced(left, right, AdvancedOptions{})
	require.NoError(t, err)
	assert.True(t, patch.Empty())
	assert.Equal(t, Stats{}, patch.Stats())
}

func TestAdvancedObjectChanges(t *testing.T) {
	t.Parallel()
	left := map[string]any{"name": "demo", "version": "1", "removedKey": true}
	right := map[string]any{"name": "demo", "version": "2", "addedKey": "x"}

	patch, err := Advanced(left, right, AdvancedOptions{})
	require.NoError(t, err)
	expected := map[string]any{
		"version":    []any{"1", "2"},
		"removedKey": []any{true, 0, 0},
		"addedKey":   []any{"x"},
	}
	assert.Empty(t, cmp.Diff(expected, patch.Delta))
	assert.Equal(t, Stats{Added: 1, Removed: 1, Modified: 1}, patch.Stats())
}

func TestAdvancedVolatileKeysIgnored(t *testing.T) {
	t.Parallel()
	left := map[string]any{"_id": "1", "created_at": "a", "updated_at": "b", "name": "x"}
	right := map[string]any{"_id": "2", "created_at": "c", "updated_at": "d", "name": "x"}

	patch, err := Advanced(left, right, AdvancedOptions{})
	require.NoError(t, err)
	assert.True(t, patch.Empty())
}

func TestAdvancedArrayMoveDetection(t *testing.T) {
	t.Parallel()
	left := map[string]any{"items": []any{"a", "b", "c"}}
	right := map[string]any{"items": []any{"c", "a", "b"}}

	patch, err := Advanced(left, right, AdvancedOptions{DetectMove: true})
	require.NoError(t, err)
	stats := patch.Stats()
	assert.Zero(t, stats.Added)
	assert.Zero(t, stats.Removed)
	assert.Zero(t, stats.Modified)
	assert.Positive(t, stats.Moved)
}

func TestAdvancedArrayWithoutMoveDetection(t *testing.T) {
	t.Parallel()
	left := map[string]any{"items": []any{"a", "b", "c"}}
	right := map[string]any{"items": []any{"c", "a", "b"}}

	patch, err := Advanced(left, right, AdvancedOptions{})
	require.NoError(t, err)
	stats := patch.Stats()
	assert.Zero(t, stats.Moved)
	assert.Equal(t, stats.Added, stats.Removed)
	assert.Positive(t, stats.Added)
}

func TestAdvancedArrayAddRemove(t *testing.T) {
	t.Parallel()
	left := map[string]any{"items": []any{"a", "b", "c"}}
	right := map[string]any{"items": []any{"a", "c", "d"}}

	patch, err := Advanced(left, right, AdvancedOptions{DetectMove: true})
	require.NoError(t, err)
	itemsDelta, ok := patch.Delta.(map[string]any)["items"].(map[string]any)
	require.True(t, ok)
	assert.True(t, isArrayDelta(itemsDelta))

	stats := patch.Stats()
	assert.Equal(t, 1, stats.Added)   // "d"
	assert.Equal(t, 1, stats.Removed) // "b"
	assert.Equal(t, 1, stats.Moved)   // "c" shifted left
}

func TestAdvancedNestedArrayElement(t *testing.T) {
	t.Parallel()
	left := map[string]any{"fields": []any{
		map[string]any{"target": "title", "type": "keyword"},
	}}
	right := map[string]any{"fields": []any{
		map[string]any{"target": "title", "type": "text"},
	}}

	patch, err := Advanced(left, right, AdvancedOptions{})
	require.NoError(t, err)
	expected := map[string]any{
		"fields": map[string]any{
			arrayTypeKey: arrayTypeMarker,
			"0": map[string]any{
				"type": []any{"keyword", "text"},
			},
		},
	}
	assert.Empty(t, cmp.Diff(expected, patch.Delta))
	assert.Equal(t, Stats{Modified: 1}, patch.Stats())
}

func TestAdvancedStatsMatchLeafCount(t *testing.T) {
	t.Parallel()
	left := map[string]any{
		"a": 1,
		"b": []any{"x", "y", "z"},
		"c": map[string]any{"d": 1},
	}
	right := map[string]any{
		"a": 2,
		"b": []any{"z", "x"},
		"e": true,
	}

	patch, err := Advanced(left, right, AdvancedOptions{DetectMove: true})
	require.NoError(t, err)
	stats := patch.Stats()
	assert.Equal(t, countLeaves(patch.Delta), stats.Total())
}

func countLeaves(node any) int {
	switch v := node.(type) {
	case []any:
		return 1
	case map[string]any:
		total := 0
		for key, child := range v {
			if key == arrayTypeKey {
				continue
			}
			total += countLeaves(child)
		}
		return total
	}
	return 0
}

func TestAdvancedCyclicInputDegrades(t *testing.T) {
	t.Parallel()
	left := map[string]any{"name": "x"}
	left["self"] = left
	right := map[string]any{"name": "x"}
	right["self"] = right

	patch, err := Advanced(left, right, AdvancedOptions{})
	assert.Nil(t, patch)
	assert.ErrorContains(t, err, "no diff available")
}

func TestPatchRender(t *testing.T) {
	t.Parallel()
	left := map[string]any{"version": "1", "old": true}
	right := map[string]any{"version": "2", "fresh": "x"}

	patch, err := Advanced(left, right, AdvancedOptions{})
	require.NoError(t, err)
	out := patch.Render()
	assert.Contains(t, out, "version:")
	assert.Contains(t, out, "- 1")
	assert.Contains(t, out, "+ 2")
	assert.Contains(t, out, "fresh:")
	assert.Contains(t, out, "old:")

	empty, err := Advanced(left, left, AdvancedOptions{})
	require.NoError(t, err)
	assert.Equal(t, "no differences", empty.Render())
}

func TestEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, Equal(
		map[string]any{"a": []any{1, 2}},
		map[string]any{"a": []any{1, 2}},
	))
	assert.False(t, Equal(
		map[string]any{"a": []any{1, 2}},
		map[string]any{"a": []any{2, 1}},
	))
}
