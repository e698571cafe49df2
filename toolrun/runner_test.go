package toolrun

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-os/sdkforge/config"
	"github.com/meridian-os/sdkforge/errors"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"plain", "--compress --board x64", []string{"--compress", "--board", "x64"}, false},
		{"quoted", `--label "out dir/image"`, []string{"--label", "out dir/image"}, false},
		{"unterminated quote", `--label "oops`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// writeScript drops a small executable into dir and returns its name.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body), 0755))
}

func testRunner(t *testing.T, dir string) *Runner {
	t.Helper()
	return New(&config.Config{
		Toolchain: config.ToolchainConfig{Dir: dir},
	})
}

func TestRunCapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	dir := t.TempDir()
	writeScript(t, dir, "fakepm", `echo "archive written: $1"`)

	res, err := testRunner(t, dir).Run(context.Background(), "fakepm", []string{"out.far"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "archive written: out.far\n", string(res.Stdout))
}

func TestRunNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	dir := t.TempDir()
	writeScript(t, dir, "fakesign", "exit 3")

	res, err := testRunner(t, dir).Run(context.Background(), "fakesign", nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, err.Error(), "exited with code 3")
}

func TestRunToolMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := testRunner(t, dir).Run(context.Background(), "nonexistent", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrToolNotFound))
}
