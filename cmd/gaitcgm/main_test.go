package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/gaitcgm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "gaitcgm version "+strings.TrimSpace(gaitcgm.Version)+"\n", out)
}

func TestRunCommand_JSON(t *testing.T) {
	out := execute(t, "run", "--frames", "8", "--json", "--variant", "eye-axis")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"axes":28`)
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph", "--frames", "4")
	assert.True(t, strings.HasPrefix(out, "graph TD"))
}
