package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/t3dlaunch/internal/app"
	"github.com/vk/t3dlaunch/internal/cli"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
	}{
		{name: "success", err: nil, want: 0},
		{name: "usage", err: &cli.ExitError{Code: 2, Message: "invalid log-level"}, want: 2, wantOut: "invalid log-level\n"},
		{name: "native exit", err: &app.NativeExitError{Code: 42}, want: 42},
		{name: "other", err: errors.New("boom"), want: 1, wantOut: "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, exitCode(&out, tt.err))
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-manifest", filepath.Join(t.TempDir(), "none"), "-log-level", "error", "-list"}))
	assert.Contains(t, out.String(), "Hello\tlibDemo_HelloApp.so:main")
}

func TestRunRecoversStartupPanic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.hcl"), []byte(`app "A" {`), 0o644))

	var out bytes.Buffer
	err := run(&out, []string{"-manifest", dir, "-list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a critical startup error occurred")
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, nil))
	assert.Contains(t, out.String(), "Usage:")
}
