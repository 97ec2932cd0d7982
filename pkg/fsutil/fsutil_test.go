package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/pkg/fsutil"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns content and snapshot", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "# Title\n")

		content, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))
		assert.Equal(t, path, snap.Path)
		assert.Equal(t, int64(8), snap.Size)
		assert.Equal(t, os.FileMode(0o600), snap.Mode.Perm())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(ctx, t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadFile(cctx, writeTemp(t, "doc.md", "x"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestModified(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "one\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.Modified(ctx, snap)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("same size different content", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "one\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o600))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		modified, err := fsutil.Modified(ctx, snap)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "one\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.Modified(ctx, snap)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.Modified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates file with default mode", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "new.md")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("hello"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(got))
	})

	t.Run("replaces file and leaves no temp files", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "old")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nope", "doc.md")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0))
	})
}

func TestSafeWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backups := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes and backs up", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "before\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		result, err := fsutil.SafeWrite(ctx, snap, []byte("after\n"), backups)
		require.NoError(t, err)
		assert.Equal(t, path+fsutil.BackupSuffix, result.BackupPath)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "after\n", string(got))

		backup, err := os.ReadFile(result.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, "before\n", string(backup))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("refuses modified file", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "before\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("someone else\n"), 0o600))

		_, err = fsutil.SafeWrite(ctx, snap, []byte("after\n"), backups)
		require.ErrorIs(t, err, fsutil.ErrFileModified)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "someone else\n", string(got))
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("without backups", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "before\n")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		result, err := fsutil.SafeWrite(ctx, snap, []byte("after\n"), fsutil.BackupConfig{})
		require.NoError(t, err)
		assert.Empty(t, result.BackupPath)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("keeps existing backup", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "v1")

		created, err := fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
		created, err = fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.False(t, created)

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "v1", string(backup))
	})

	t.Run("mode none", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "doc.md", "v1")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, fsutil.BackupPath(path, fsutil.BackupModeNone))
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()
		created, err := fsutil.CreateBackup(ctx, filepath.Join(t.TempDir(), "gone.md"), cfg)
		require.NoError(t, err)
		assert.False(t, created)
	})
}
