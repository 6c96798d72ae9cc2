package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates a fake target CLI in a temporary directory.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test scripts are POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "codex")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+content), 0o755)
	require.NoError(t, err)
	return path
}

func TestCurrentVersion(t *testing.T) {
	cmd := writeScript(t, `echo "codex-cli 0.61.0"`)
	ver, err := Probe{Command: cmd}.CurrentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.61.0", ver.String())
}

func TestCurrentVersionOnStderr(t *testing.T) {
	cmd := writeScript(t, `echo "codex-cli 0.61.0" >&2`)
	ver, err := Probe{Command: cmd}.CurrentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.61.0", ver.String())
}

func TestCommandNotFound(t *testing.T) {
	_, err := Probe{Command: filepath.Join(t.TempDir(), "no-such-binary")}.CurrentVersion(context.Background())
	require.Error(t, err)

	var probeErr *Error
	assert.ErrorAs(t, err, &probeErr)
}

func TestCommandFails(t *testing.T) {
	cmd := writeScript(t, `echo "boom" >&2; exit 3`)
	_, err := Probe{Command: cmd}.CurrentVersion(context.Background())
	require.Error(t, err)

	var probeErr *Error
	require.ErrorAs(t, err, &probeErr)
	assert.Contains(t, probeErr.Error(), "boom")
}

func TestNoVersionInOutput(t *testing.T) {
	cmd := writeScript(t, `echo "hello world"`)
	_, err := Probe{Command: cmd}.CurrentVersion(context.Background())
	assert.ErrorIs(t, err, ErrNoVersionInOutput)
}

func TestTimeout(t *testing.T) {
	cmd := writeScript(t, `sleep 10`)
	start := time.Now()
	_, err := Probe{Command: cmd, Timeout: 100 * time.Millisecond}.CurrentVersion(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	var probeErr *Error
	require.ErrorAs(t, err, &probeErr)
	assert.Contains(t, probeErr.Error(), "timed out")
}
