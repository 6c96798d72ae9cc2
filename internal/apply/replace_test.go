package apply

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	target := filepath.Join(t.TempDir(), "codex")
	require.NoError(t, os.WriteFile(target, []byte(content), 0o755))
	return target
}

func TestReplaceBinary(t *testing.T) {
	target := writeTarget(t, "old binary")

	err := replaceBinary(strings.NewReader("new binary"), target, 0o755)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(content))

	// no staged file left behind
	dir := filepath.Dir(target)
	assert.NoFileExists(t, filepath.Join(dir, ".codex.new"))
	if runtime.GOOS != "windows" {
		assert.NoFileExists(t, filepath.Join(dir, ".codex.old"))
	}
}

func TestReplaceBinaryKeepsExecutableMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	target := writeTarget(t, "old binary")
	require.NoError(t, os.Chmod(target, 0o750))

	err := replaceBinary(strings.NewReader("new binary"), target, targetMode(target))
	require.NoError(t, err)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o751), fi.Mode().Perm())
}

// bogusReader fails partway through, standing in for an interrupted
// download.
type bogusReader struct {
	read int
}

func (r *bogusReader) Read(p []byte) (int, error) {
	if r.read > 0 {
		return 0, errors.New("connection reset")
	}
	n := copy(p, "partial content")
	r.read += n
	return n, nil
}

func TestInterruptedWriteLeavesOriginalUntouched(t *testing.T) {
	target := writeTarget(t, "old binary")

	err := replaceBinary(&bogusReader{}, target, 0o755)
	require.Error(t, err)

	// the canonical path still holds the fully-old binary
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old binary", string(content))

	// the partially written staged file was cleaned up
	assert.NoFileExists(t, filepath.Join(filepath.Dir(target), ".codex.new"))
}

func TestStagedFileCannotBeCreated(t *testing.T) {
	target := writeTarget(t, "old binary")

	openFile = func(name string, flag int, perm os.FileMode) (*os.File, error) {
		return nil, os.ErrPermission
	}
	defer func() { openFile = os.OpenFile }()

	err := replaceBinary(strings.NewReader("new binary"), target, 0o755)
	assert.ErrorIs(t, err, os.ErrPermission)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old binary", string(content))
}

func TestReplaceBinaryTwiceIsStable(t *testing.T) {
	target := writeTarget(t, "v1")

	require.NoError(t, replaceBinary(strings.NewReader("v2"), target, 0o755))
	require.NoError(t, replaceBinary(strings.NewReader("v3"), target, 0o755))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "v3", string(content))
}

func TestRollbackError(t *testing.T) {
	assert.Nil(t, RollbackError(nil))
	assert.Nil(t, RollbackError(errors.New("plain failure")))

	rollback := errors.New("rollback failed")
	err := &rollbackError{errors.New("rename failed"), rollback}
	assert.Equal(t, rollback, RollbackError(err))
	// still reported when wrapped in an update error
	assert.Equal(t, rollback, RollbackError(applyError(ReplaceFailed, err)))
}
