//go:build !lambda

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRequest(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_SearchJSON(t *testing.T) {
	asm := symmetricAssembly()
	path := writeRequest(t, map[string]any{"target": asm.Totals().Force, "count": 3, "quadrants": asm})

	out, err := runCLI(t, "search", "--json", "--workers", "1", path)
	require.NoError(t, err)
	var r Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.NotEmpty(t, r.Results)
	assert.LessOrEqual(t, len(r.Results), 3)
	assert.Len(t, r.Stages, 3)
	assert.Equal(t, Stars(r.Results[0].Modified), r.Results[0].Stars)
}

func TestCLI_SearchTable(t *testing.T) {
	asm := symmetricAssembly()
	path := writeRequest(t, map[string]any{"target": asm.Totals().Force * 1.02, "quadrants": asm})
	out, err := runCLI(t, "search", "--cap", "5", path)
	require.NoError(t, err)
	assert.Contains(t, out, "feasible combinations")
}

func TestCLI_Eval(t *testing.T) {
	asm := symmetricAssembly()
	path := writeRequest(t, map[string]any{"target": asm.Totals().Force, "quadrants": asm})
	out, err := runCLI(t, "eval", path)
	require.NoError(t, err)
	assert.Contains(t, out, "centroid X = 0.0000 mm, Y = 0.0000 mm OK")
}

func TestCLI_Spring(t *testing.T) {
	path := writeRequest(t, map[string]any{"n": 2})
	out, err := runCLI(t, "spring", "--json", path)
	require.NoError(t, err)
	var ds []SpringDesign
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	assert.Len(t, ds, 2)
}

func TestCLI_Errors(t *testing.T) {
	path := writeRequest(t, map[string]any{"target": 1, "quadrants": []any{}})
	_, err := runCLI(t, "search", path)
	assert.ErrorIs(t, err, ErrQuadrantCount)

	_, err = runCLI(t, "search", "--beam", "0", path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = runCLI(t, "eval")
	assert.Error(t, err)
}
