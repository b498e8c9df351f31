package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/dux/internal/tree"
)

// deleteCandidate is one item queued for removal: the node it came from,
// its absolute path, and its size at the moment it was selected (captured
// before the optimistic tree removal, since the node is gone by the time a
// worker's result arrives).
type deleteCandidate struct {
	id   tree.NodeId
	path string
	size int64
}

// deleteResult is what a worker posts back on the shared channel.
type deleteResult struct {
	id   tree.NodeId
	size int64
	err  error
}

// deletePath removes path from disk and returns the actual bytes freed, as
// measured by deleteResolvedPath during the removal itself rather than a
// size captured before the call. Directories are removed recursively;
// everything else (files, symlinks) with a single unlink. rootPath
// constrains deletion to the scan root's subtree: the parent directory's
// path is resolved through any symlinks so a traversal through a symlinked
// directory can't escape the root, while the final path component is left
// unresolved so deleting a symlink itself still removes the link rather
// than its target.
func deletePath(path, rootPath string) (int64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", path, err)
	}
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return 0, fmt.Errorf("resolve root %s: %w", rootPath, err)
	}

	realParent, err := filepath.EvalSymlinks(filepath.Dir(absPath))
	if err != nil {
		return 0, fmt.Errorf("resolve parent of %s: %w", absPath, err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return 0, fmt.Errorf("resolve root %s: %w", absRoot, err)
	}

	realPath := filepath.Join(realParent, filepath.Base(absPath))

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0, fmt.Errorf("refusing to delete %s: outside scan root %s", absPath, absRoot)
	}

	if _, err := os.Lstat(realPath); err != nil {
		return 0, fmt.Errorf("stat %s: %w", realPath, err)
	}
	return deleteResolvedPath(realParent, filepath.Base(realPath))
}

// spawnDeleteWorkers launches one goroutine per candidate, each performing
// a filesystem removal and posting its outcome on results. Workers are not
// cancellable: once issued they run to completion, matching the batch
// semantics of a user-initiated multi-delete that is typically small. The
// reported size is whatever deletePath actually measured freeing; if a
// successful removal measures zero (an entry whose pre-unlink stat failed,
// say) the candidate's pre-deletion tree size is reported instead so a
// successful-but-unmeasurable delete still updates session stats. A removal
// that fails partway is posted as a failure.
func spawnDeleteWorkers(candidates []deleteCandidate, rootPath string, results chan<- deleteResult) {
	for _, c := range candidates {
		go func(c deleteCandidate) {
			freed, err := deletePath(c.path, rootPath)
			if err != nil {
				results <- deleteResult{id: c.id, err: err}
				return
			}
			if freed == 0 {
				freed = c.size
			}
			results <- deleteResult{id: c.id, size: freed}
		}(c)
	}
}
