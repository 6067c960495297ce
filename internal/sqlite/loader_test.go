// Tests for JSONL loading and atomic persistence.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadJSONLSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, designsFile,
		`{"design_id":"d1","name":"one","rows":2,"cols":2,"created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z","future_field":true}
not json at all
{"design_id":"d2","name":"missing grid","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
{"design_id":"d3","name":"zero rows","rows":0,"cols":2,"created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}

`)
	writeFile(t, dir, placementsFile,
		`{"design_id":"d1","token_id":"a","cell_id":"c1","cell_ord":1,"shape":"s"}
{"design_id":"d1","token_id":"b","cell_id":"c1","cell_ord":1,"shape":"s"}
{"design_id":"d1","token_id":"a","cell_id":"c2","cell_ord":2,"shape":"s"}
{"design_id":"ghost","token_id":"z","cell_id":"c1","cell_ord":1,"shape":"s"}
{"design_id":"d1","token_id":"far","cell_id":"c5","cell_ord":5,"shape":"s"}
{"design_id":"d1","token_id":"skew","cell_id":"c3","cell_ord":4,"shape":"s"}
{"design_id":"d1","token_id":"zero","cell_id":"c0","cell_ord":0,"shape":"s"}
{"design_id":"d3","token_id":"orphan","cell_id":"c1","cell_ord":1,"shape":"s"}
`)

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	all, err := b.List()
	require.NoError(t, err)
	require.Len(t, all, 1, "incomplete, malformed and out-of-range designs are skipped")

	d := all[0]
	assert.Equal(t, "one", d.Name)
	assert.Equal(t, []types.Placement{{TokenID: "a", CellID: "c1", Shape: "s"}}, d.Placements,
		"rows breaking exclusivity or naming cells off the grid are skipped")
}

func TestReadJSONL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.jsonl", "{\"a\":1}\n\n{broken\n{\"b\":2}\n")

	recs, err := readJSONL(filepath.Join(dir, "x.jsonl"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.JSONEq(t, `{"a":1}`, string(recs[0]))
	assert.JSONEq(t, `{"b":2}`, string(recs[1]))

	_, err = readJSONL(filepath.Join(dir, "missing.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	writeFile(t, dir, "out.jsonl", "old\n")

	require.NoError(t, writeJSONL(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestInitJSONLFilesKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, designsFile, "{}\n")

	require.NoError(t, initJSONLFiles(dir))

	data, err := os.ReadFile(filepath.Join(dir, designsFile))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
	assert.FileExists(t, filepath.Join(dir, placementsFile))
}
