//go:build windows

package app

import (
	"io/fs"
	"os"
	"path/filepath"
)

// deleteResolvedPath has no openat/unlinkat equivalent on Windows; the
// containment check already happened against resolved symlinks in
// deletePath. It still reports actual freed bytes rather than a
// pre-captured size, walking the subtree to sum file sizes before handing
// off to RemoveAll, matching the accounting deleteAt does on Unix.
func deleteResolvedPath(parentPath, baseName string) (int64, error) {
	realPath := filepath.Join(parentPath, baseName)
	info, err := os.Lstat(realPath)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		if err := os.Remove(realPath); err != nil {
			return 0, err
		}
		return info.Size(), nil
	}

	var freed int64
	err = filepath.WalkDir(realPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if info, err := d.Info(); err == nil {
			freed += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(realPath); err != nil {
		return freed, err
	}
	return freed, nil
}
