package fsutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode fs.FileMode = 0o644

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so readers never observe a partial file.
// A zero mode means DefaultFileMode. On error the temp file is removed
// and the original stays untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteResult describes what SafeWrite did.
type WriteResult struct {
	// BackupPath is set when a backup was created.
	BackupPath string
}

// SafeWrite replaces the file described by snap with content. It refuses
// with ErrFileModified when the file changed after snap was taken, then
// creates a backup according to backups and writes atomically, keeping
// the original mode.
func SafeWrite(ctx context.Context, snap *Snapshot, content []byte, backups BackupConfig) (*WriteResult, error) {
	modified, err := Modified(ctx, snap)
	if err != nil {
		return nil, err
	}
	if modified {
		return nil, fmt.Errorf("%w: %s", ErrFileModified, snap.Path)
	}

	result := &WriteResult{}

	created, err := CreateBackup(ctx, snap.Path, backups)
	if err != nil {
		return nil, err
	}
	if created {
		result.BackupPath = BackupPath(snap.Path, backups.Mode)
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode); err != nil {
		return nil, err
	}
	return result, nil
}
