package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProblem(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hull v")
}

func TestEvalCommand(t *testing.T) {
	path := writeProblem(t, `
variables: 1
box:
  lower: [0]
  upper: [2]
point: [1]
nodes:
  - {kind: var, index: 0}
  - {op: mul, children: [0, 0]}
`)
	out, err := runCLI(t, "eval", path, "--refine", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "range:")
	assert.Contains(t, out, "convex:")
}

func TestEvalCommandConstantRoot(t *testing.T) {
	path := writeProblem(t, `
variables: 0
box: {lower: [], upper: []}
point: []
nodes:
  - {value: 2}
  - {value: 3}
  - {op: add, children: [0, 1]}
`)
	out, err := runCLI(t, "eval", path)
	require.NoError(t, err)
	assert.Contains(t, out, "value: 5")
}

func TestEvalCommandDimensionMismatch(t *testing.T) {
	path := writeProblem(t, `
variables: 2
box:
  lower: [0]
  upper: [1]
point: [0.5]
nodes:
  - {kind: var, index: 0}
  - {kind: var, index: 1}
  - {op: add, children: [0, 1]}
`)
	_, err := runCLI(t, "eval", path)
	assert.Error(t, err)
}

func TestEvalCommandInfeasibleDomain(t *testing.T) {
	src := `
variables: 1
box:
  lower: [-1]
  upper: [1]
point: [0.5]
nodes:
  - {kind: var, index: 0}
  - {op: log, children: [0]}
`
	_, err := runCLI(t, "eval", writeProblem(t, src))
	assert.Error(t, err)

	// Clipping recovers where the default policy fails.
	out, err := runCLI(t, "eval", writeProblem(t, src), "--clip")
	require.NoError(t, err)
	assert.Contains(t, out, "range:")
}

func TestEvalCommandMissingFile(t *testing.T) {
	_, err := runCLI(t, "eval", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
