package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runFixture writes a stub tool that records its argv, plus a config file
// pointing the toolchain at it. Returns the argv file path.
func runFixture(t *testing.T, tool string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	dir := t.TempDir()
	toolDir := filepath.Join(dir, "tools")
	require.NoError(t, os.MkdirAll(toolDir, 0755))

	argv := filepath.Join(dir, "argv.txt")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n", argv)
	require.NoError(t, os.WriteFile(filepath.Join(toolDir, tool), []byte(script), 0755))

	cfgFile := filepath.Join(dir, "sdkforge.toml")
	cfgBody := fmt.Sprintf("[toolchain]\ndir = %q\n", toolDir)
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgBody), 0644))

	origConfig, origArgs := configPath, runArgsString
	t.Cleanup(func() { configPath, runArgsString = origConfig, origArgs })
	configPath = cfgFile
	runArgsString = ""

	return argv
}

func TestRunCommand_ArgsFlagBeforeTool(t *testing.T) {
	argv := runFixture(t, "fakecmc")

	RunCmd.SetArgs([]string{"--args", "validate meta/foo.cml", "fakecmc"})
	require.NoError(t, RunCmd.Execute())

	data, err := os.ReadFile(argv)
	require.NoError(t, err)
	assert.Equal(t, "validate meta/foo.cml\n", string(data))
}

func TestRunCommand_ToolFlagsPassThrough(t *testing.T) {
	argv := runFixture(t, "fakefidlc")

	RunCmd.SetArgs([]string{"fakefidlc", "--files", "foo.fidl"})
	require.NoError(t, RunCmd.Execute())

	data, err := os.ReadFile(argv)
	require.NoError(t, err)
	assert.Equal(t, "--files foo.fidl\n", string(data))
	assert.Empty(t, runArgsString, "flags after the tool name belong to the tool")
}
