package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawl-dev/trawl/internal/grep"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSearchCommand(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "foo\nbar\nfoo\n")

	out, err := execute(t, "search", "foo", root, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "2 RESULTS ACROSS 1 FILE.")
	assert.Contains(t, out, "a.txt:1:0: foo")
	assert.Contains(t, out, "a.txt:3:0: foo")
}

func TestSearchCommandJSON(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "needle\n")

	out, err := execute(t, "search", "needle", root, "--format", "json")
	require.NoError(t, err)

	var res grep.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "a.txt", res.Matches[0].Path)
	assert.EqualValues(t, 1, res.Stats.FilesMatched)
}

func TestSearchCommandInvalidPattern(t *testing.T) {
	isolateHome(t)
	_, err := execute(t, "search", "[unclosed", t.TempDir())
	assert.Error(t, err)
}

func TestSearchCommandNoArgs(t *testing.T) {
	isolateHome(t)
	_, err := execute(t, "search")
	assert.Error(t, err)
}

func TestSearchCommandTypeFilter(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, "main.go", "match\n")
	writeFile(t, root, "notes.md", "match\n")

	out, err := execute(t, "search", "match", root, "-t", "go", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "main.go")
	assert.NotContains(t, out, "notes.md")
}

func TestSearchCommandMaxCount(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "hit\nhit\nhit\n")

	out, err := execute(t, "search", "hit", root, "-m", "1", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "1 RESULT ACROSS 1 FILE.")
}

func TestSearchCommandNoIgnore(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "hidden.txt\n")
	writeFile(t, root, "hidden.txt", "match\n")

	out, err := execute(t, "search", "match", root, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "0 RESULTS")

	out, err = execute(t, "search", "match", root, "--no-ignore", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "hidden.txt:1:0: match")
}

func TestSearchCommandContext(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "one\ntwo\nthree\n")

	out, err := execute(t, "search", "two", root, "-C", "1", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt:1:0: one")
	assert.Contains(t, out, "a.txt:2:0: two")
	assert.Contains(t, out, "a.txt:3:0: three")
}

func TestSearchCommandConfigFile(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeFile(t, root, ".trawl.yaml", "search:\n  types: [go]\n")
	writeFile(t, root, "main.go", "match\n")
	writeFile(t, root, "notes.md", "match\n")

	out, err := execute(t, "search", "match", root, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "main.go")
	assert.NotContains(t, out, "notes.md")
}

func TestSearchCommandBadFilesize(t *testing.T) {
	isolateHome(t)
	_, err := execute(t, "search", "x", t.TempDir(), "--max-filesize", "lots")
	assert.Error(t, err)
}
