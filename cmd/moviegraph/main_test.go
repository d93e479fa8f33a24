package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o600))
	return filePath
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// Missing closing braces fail in the loading phase inside app.NewApp().
	filePath := writeGraph(t, `
graph "shot" {
  node "setting" "out" {
`)
	out := &bytes.Buffer{}

	runErr := run(out, []string{"-log-level", "error", filePath})

	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_Flattens(t *testing.T) {
	t.Parallel()

	filePath := writeGraph(t, `
graph "shot" {
  output "main" {}

  node "setting" "layer" {
    type = "render_layer"
    properties {
      layer_name = "fg"
    }
  }

  edge {
    from = "layer"
    to   = "output.main"
  }
}
`)
	out := &bytes.Buffer{}

	err := run(out, []string{"-log-level", "error", filePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), `"layer_name":"fg"`)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
