package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "xelatex", Args: []string{"SoLoud.tex"}}
	assert.Equal(t, "xelatex SoLoud.tex", c.String())
}

func TestExecCapturesStdout(t *testing.T) {
	requireTool(t, "echo")
	out := bytes.Buffer{}
	err := Exec{}.Run(context.Background(), Command{Name: "echo", Args: []string{"pass", "1"}, Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, "pass 1\n", out.String())
}

func TestExecRunsInDir(t *testing.T) {
	requireTool(t, "pwd")
	dir := t.TempDir()
	out, err := Output(context.Background(), Exec{}, Command{Name: "pwd", Dir: dir})
	require.NoError(t, err)
	got, _ := filepath.EvalSymlinks(string(bytes.TrimSpace(out)))
	want, _ := filepath.EvalSymlinks(dir)
	assert.Equal(t, want, got)
}

func TestExecNonZeroExit(t *testing.T) {
	requireTool(t, "sh")
	err := Exec{}.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo first >&2; echo boom >&2; exit 3"}})

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "sh", te.Tool)
	assert.Contains(t, err.Error(), "boom")
	assert.NotContains(t, err.Error(), "first")

	var ee *exec.ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.ExitCode())
}

func TestExecMissingBinary(t *testing.T) {
	err := Exec{}.Run(context.Background(), Command{Name: "panbook-no-such-tool"})
	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestLookup(t *testing.T) {
	requireTool(t, "sh")
	assert.Equal(t, []string{"panbook-no-such-tool"}, Lookup("sh", "panbook-no-such-tool"))
	assert.Empty(t, Lookup("sh"))
}
