package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
)

func newTestRoot(t *testing.T, args ...string) (*rootCommand, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	in := strings.NewReader("")
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root := NewRootCommand(in, out, errOut, nil)
	root.cmd.SetArgs(args)
	return root, out, errOut
}

func writeJSONFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, json.MustEncode(v, true), 0o644))
	return path
}

func TestRootHelp(t *testing.T) {
	root, out, _ := newTestRoot(t)
	assert.Equal(t, 0, root.Execute())
	assert.Contains(t, out.String(), "Mapping Studio CLI")
	assert.Contains(t, out.String(), "diff")
	assert.Contains(t, out.String(), "apply")
}

func TestDiffCommandSimple(t *testing.T) {
	dir := t.TempDir()
	left := writeJSONFile(t, dir, "left.json", map[string]any{"name": "products", "version": "1"})
	right := writeJSONFile(t, dir, "right.json", map[string]any{"name": "products", "version": "2", "extra": true})

	root, out, _ := newTestRoot(t, "diff", left, right)
	assert.Equal(t, 0, root.Execute())

	assert.Contains(t, out.String(), "extra")
	assert.Contains(t, out.String(), "version")
	assert.Contains(t, out.String(), "Added: 1, removed: 0, modified: 1.")
}

func TestVerboseLogsElapsedTime(t *testing.T) {
	dir := t.TempDir()
	doc := map[string]any{"name": "products"}
	left := writeJSONFile(t, dir, "left.json", doc)
	right := writeJSONFile(t, dir, "right.json", doc)

	root, out, _ := newTestRoot(t, "diff", "--verbose", left, right)
	assert.Equal(t, 0, root.Execute())
	assert.Contains(t, out.String(), "Done in ")
}

func TestDiffCommandSimpleEqual(t *testing.T) {
	dir := t.TempDir()
	doc := map[string]any{"name": "products"}
	left := writeJSONFile(t, dir, "left.json", doc)
	right := writeJSONFile(t, dir, "right.json", doc)

	root, out, _ := newTestRoot(t, "diff", left, right)
	assert.Equal(t, 0, root.Execute())
	assert.Contains(t, out.String(), "No differences.")
}

func TestDiffCommandAdvancedJSON(t *testing.T) {
	dir := t.TempDir()
	left := writeJSONFile(t, dir, "left.json", map[string]any{
		"fields": []any{
			map[string]any{"id": "F1", "type": "keyword"},
		},
	})
	right := writeJSONFile(t, dir, "right.json", map[string]any{
		"fields": []any{
			map[string]any{"id": "F1", "type": "text"},
		},
	})

	root, out, _ := newTestRoot(t, "diff", left, right, "--advanced", "--json")
	assert.Equal(t, 0, root.Execute())

	result := struct {
		Delta map[string]any `json:"delta"`
		Stats struct {
			Modified int `json:"modified"`
		} `json:"stats"`
	}{}
	require.NoError(t, json.DecodeString(out.String(), &result))
	assert.Equal(t, 1, result.Stats.Modified)
	assert.NotEmpty(t, result.Delta)
}

func TestDiffCommandMissingFile(t *testing.T) {
	root, _, errOut := newTestRoot(t, "diff", "missing-left.json", "missing-right.json")
	assert.Equal(t, 1, root.Execute())
	assert.Contains(t, errOut.String(), "cannot read file")
}
