//go:build !windows

package app

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// deleteResolvedPath removes baseName from within parentPath using
// openat/unlinkat so a symlink swapped in after containment validation
// can't redirect the removal outside the scan root: O_NOFOLLOW on the
// directory open guarantees we never descend through a symlink, and every
// unlink is relative to a file descriptor opened before the recursive walk
// began rather than to a path that could be raced out from under us.
//
// Unlike a plain os.RemoveAll, deleteAt stats each entry's actual block
// usage immediately before unlinking it, so the returned byte count is
// what the multi-delete progress structure (spec.md §4.5's
// {total, completed, bytes_freed, failures}) reports back per item — the
// real outcome of this specific worker's removal, not the pre-deletion
// tree size the caller captured before the batch was dispatched.
func deleteResolvedPath(parentPath, baseName string) (int64, error) {
	parentFD, err := unix.Open(parentPath, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return 0, err
	}
	defer unix.Close(parentFD)

	return deleteAt(parentFD, baseName)
}

// diskUsage returns the on-disk block usage of the entry named by name
// relative to dirFD, without following a symlink at the final component.
func diskUsage(dirFD int, name string) int64 {
	var st unix.Stat_t
	if err := unix.Fstatat(dirFD, name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return 0
	}
	return int64(st.Blocks) * 512
}

// deleteAt removes name relative to parentFD without following symlinks,
// returning the block usage freed: the entry's own usage for a file or
// symlink, the sum over its descendants for a directory (the directory's
// own blocks are not counted, matching the scanner's directory sizes).
func deleteAt(parentFD int, name string) (int64, error) {
	freed := diskUsage(parentFD, name)

	if err := unix.Unlinkat(parentFD, name, 0); err == nil {
		return freed, nil
	} else if !errors.Is(err, unix.EISDIR) && !errors.Is(err, unix.EPERM) {
		if errors.Is(err, unix.ENOENT) {
			return 0, fs.ErrNotExist
		}
		return 0, err
	}

	childFD, err := unix.Openat(parentFD, name, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return 0, fs.ErrNotExist
		}
		if errors.Is(err, unix.ENOTDIR) {
			if unlinkErr := unix.Unlinkat(parentFD, name, 0); unlinkErr == nil {
				return freed, nil
			} else if errors.Is(unlinkErr, unix.ENOENT) {
				return 0, fs.ErrNotExist
			} else {
				return 0, unlinkErr
			}
		}
		return 0, err
	}

	childDir := os.NewFile(uintptr(childFD), name)
	entries, readErr := childDir.ReadDir(-1)
	if readErr != nil {
		_ = childDir.Close()
		return 0, readErr
	}

	var freedChildren int64
	for _, entry := range entries {
		n, err := deleteAt(childFD, entry.Name())
		freedChildren += n
		if err != nil {
			_ = childDir.Close()
			return freedChildren, err
		}
	}

	if err := childDir.Close(); err != nil {
		return freedChildren, err
	}

	if err := unix.Unlinkat(parentFD, name, unix.AT_REMOVEDIR); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return freedChildren, fs.ErrNotExist
		}
		return freedChildren, err
	}
	return freedChildren, nil
}
