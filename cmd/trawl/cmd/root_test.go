package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawl-dev/trawl/pkg/version"
)

// isolateHome keeps log files and host configuration out of the test.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
}

// execute runs the CLI with args and captures combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	isolateHome(t)
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "trawl")
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "serve")
}

func TestRootUnknownCommand(t *testing.T) {
	isolateHome(t)
	_, err := execute(t, "frobnicate")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	isolateHome(t)
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "trawl version "+version.Version)
}

func TestVersionCommand(t *testing.T) {
	isolateHome(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}

func TestVersionCommandJSON(t *testing.T) {
	isolateHome(t)
	out, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}

func TestTypesCommand(t *testing.T) {
	isolateHome(t)
	out, err := execute(t, "types", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "go")
	assert.Contains(t, out, ".yaml")
}
