package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/uiprobe/internal/observability"
)

func TestCommandsListsSurface(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"commands"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "widget_by_path")
	assert.Contains(t, out, "drag_n_drop")
	assert.Contains(t, out, "quit")
}

func TestVersionFlag(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), Version)
}
