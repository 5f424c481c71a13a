package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/output"
)

func TestTransaction_CommitWritesManifestAndFiles(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "out")

	txn, err := output.New(target)
	require.NoError(t, err)

	require.NoError(t, txn.AddOutput("a.txt", []byte("hello")))
	require.NoError(t, txn.AddOutput("nested/b.txt", []byte("world")))

	manifest, err := txn.Commit()
	require.NoError(t, err)
	assert.Equal(t, output.Committed, txn.State())
	assert.Len(t, manifest.Files, 2)
	assert.Equal(t, "a.txt", manifest.Files[0].RelativePath)
	assert.Equal(t, "nested/b.txt", manifest.Files[1].RelativePath)

	data, err := os.ReadFile(filepath.Join(target, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = os.ReadFile(filepath.Join(target, "output-manifest.json"))
	require.NoError(t, err)
}

func TestTransaction_RollbackLeavesTargetUntouched(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "existing.txt"), []byte("keep"), 0o644))

	txn, err := output.New(target)
	require.NoError(t, err)

	require.NoError(t, txn.AddOutput("new.txt", []byte("data")))
	require.NoError(t, txn.Rollback())

	assert.Equal(t, output.RolledBack, txn.State())

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "existing.txt", entries[0].Name())
}

func TestTransaction_CheckValidationGates(t *testing.T) {
	t.Parallel()

	txn, err := output.New(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)

	defer txn.Rollback()

	err = txn.CheckValidationGates(false, true)
	require.Error(t, err)

	var outErr interface{ ExitCode() int }
	require.ErrorAs(t, err, &outErr)
	assert.Equal(t, output.ExitCodeConsistencyFailed, outErr.ExitCode())

	err = txn.CheckValidationGates(true, false)
	require.Error(t, err)
	require.ErrorAs(t, err, &outErr)
	assert.Equal(t, output.ExitCodeMessageFailed, outErr.ExitCode())
}

func TestTransaction_AddOutputAfterCommitFails(t *testing.T) {
	t.Parallel()

	txn, err := output.New(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)

	require.NoError(t, txn.AddOutput("a.txt", []byte("x")))
	_, err = txn.Commit()
	require.NoError(t, err)

	err = txn.AddOutput("b.txt", []byte("y"))
	require.Error(t, err)
}
