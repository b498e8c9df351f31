// Package scanner walks a directory subtree concurrently and feeds the
// discovered entries to a single consumer goroutine that owns tree
// construction, matching the single-writer discipline the rest of dux
// relies on.
package scanner

// Config controls how a Scan walks the filesystem.
type Config struct {
	// FollowSymlinks descends into symlinked directories instead of
	// recording them as opaque leaf nodes.
	FollowSymlinks bool
	// MaxDepth caps recursion; 0 means unlimited.
	MaxDepth int
	// SameFilesystem skips any entry whose device id differs from the
	// root's, so a scan never wanders onto a different mounted volume.
	SameFilesystem bool
	// NumThreads bounds directory-scan concurrency; 0 picks
	// runtime.GOMAXPROCS(0)*3, matching the teacher's default.
	NumThreads int
}

// DefaultConfig mirrors the original scanner's conservative defaults:
// don't follow symlinks, don't cross filesystem boundaries, unlimited
// depth, automatic concurrency.
func DefaultConfig() Config {
	return Config{
		FollowSymlinks: false,
		MaxDepth:       0,
		SameFilesystem: true,
		NumThreads:     0,
	}
}
