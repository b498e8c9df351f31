package scanner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sadopc/dux/internal/tree"
)

// scanDir reads one directory and feeds every entry it finds to discoveries.
// logicalPath is the path the entry should be attached under in the tree
// (its parent's path); actualPath is where the directory's contents should
// actually be read from disk. The two differ only when FollowSymlinks walks
// into a symlinked directory: the tree records the link's own path while
// the walk continues reading from the resolved target.
//
// Subdirectories are scanned by bounded additional goroutines when a
// semaphore slot is free, falling back to scanning inline so a burst of
// wide directories never spawns unbounded goroutines.
func (s *Scanner) scanDir(
	ctx context.Context,
	scanRoot string,
	logicalPath string,
	actualPath string,
	rootDev uint64,
	sem chan struct{},
	wg *sync.WaitGroup,
	discoveries chan<- discovery,
	filesScanned, dirsScanned, bytesFound, errCount *atomic.Int64,
	curMu *sync.Mutex,
	curPath *string,
) {
	defer wg.Done()

	select {
	case <-ctx.Done():
		return
	default:
	}

	dir, err := os.Open(actualPath)
	if err != nil {
		errCount.Add(1)
		return
	}
	defer dir.Close()

	dirsScanned.Add(1)
	curMu.Lock()
	*curPath = logicalPath
	curMu.Unlock()

	spawn := func(logical, actual string) {
		select {
		case <-ctx.Done():
			return
		default:
		}
		select {
		case sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer func() { <-sem }()
				s.scanDir(ctx, scanRoot, logical, actual, rootDev, sem, wg, discoveries,
					filesScanned, dirsScanned, bytesFound, errCount, curMu, curPath)
			}()
		default:
			wg.Add(1)
			s.scanDir(ctx, scanRoot, logical, actual, rootDev, sem, wg, discoveries,
				filesScanned, dirsScanned, bytesFound, errCount, curMu, curPath)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		entries, readErr := dir.ReadDir(256)
		for _, entry := range entries {
			select {
			case <-ctx.Done():
				return
			default:
			}

			name := entry.Name()
			entryLogicalPath := filepath.Join(logicalPath, name)
			entryActualPath := filepath.Join(actualPath, name)

			if isVirtualOrSlowPath(entryLogicalPath, scanRoot) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				errCount.Add(1)
				continue
			}

			if s.cfg.SameFilesystem && getDeviceID(info) != rootDev {
				continue
			}

			switch {
			case info.IsDir():
				discoveries <- discovery{
					parentPath: logicalPath,
					name:       name,
					kind:       tree.KindDirectory,
					path:       entryLogicalPath,
					mtime:      info.ModTime(),
				}
				if s.cfg.MaxDepth > 0 && depthOf(scanRoot, entryLogicalPath) >= s.cfg.MaxDepth {
					continue
				}
				spawn(entryLogicalPath, entryActualPath)

			case info.Mode()&os.ModeSymlink != 0:
				if !s.cfg.FollowSymlinks {
					discoveries <- discovery{
						parentPath: logicalPath,
						name:       name,
						kind:       tree.KindSymlink,
						path:       entryLogicalPath,
						size:       getDiskUsage(info),
					}
					filesScanned.Add(1)
					continue
				}
				target, err := filepath.EvalSymlinks(entryActualPath)
				if err != nil {
					errCount.Add(1)
					discoveries <- discovery{
						parentPath: logicalPath,
						name:       name,
						kind:       tree.KindError,
						path:       entryLogicalPath,
					}
					continue
				}
				targetInfo, err := os.Stat(target)
				if err != nil {
					errCount.Add(1)
					discoveries <- discovery{
						parentPath: logicalPath,
						name:       name,
						kind:       tree.KindError,
						path:       entryLogicalPath,
					}
					continue
				}
				if targetInfo.IsDir() {
					discoveries <- discovery{
						parentPath: logicalPath,
						name:       name,
						kind:       tree.KindDirectory,
						path:       entryLogicalPath,
						mtime:      targetInfo.ModTime(),
					}
					if s.cfg.MaxDepth > 0 && depthOf(scanRoot, entryLogicalPath) >= s.cfg.MaxDepth {
						continue
					}
					spawn(entryLogicalPath, target)
				} else {
					discoveries <- discovery{
						parentPath: logicalPath,
						name:       name,
						kind:       tree.KindFile,
						path:       entryLogicalPath,
						size:       getDiskUsage(targetInfo),
					}
					filesScanned.Add(1)
					bytesFound.Add(targetInfo.Size())
				}

			default:
				size := getDiskUsage(info)
				discoveries <- discovery{
					parentPath: logicalPath,
					name:       name,
					kind:       tree.KindFile,
					path:       entryLogicalPath,
					size:       size,
				}
				filesScanned.Add(1)
				bytesFound.Add(info.Size())
			}
		}

		if readErr == io.EOF || len(entries) == 0 {
			break
		}
		if readErr != nil {
			errCount.Add(1)
			break
		}
	}
}

func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
