//go:build !windows

package scanner

import (
	"os"
	"syscall"
)

// getDiskUsage returns actual disk usage in bytes (block count * 512),
// falling back to the logical size when the platform stat isn't available.
func getDiskUsage(info os.FileInfo) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}
	return int64(stat.Blocks) * 512
}

// getDeviceID returns the filesystem device id backing info, used for the
// same-filesystem containment check. Returns 0 if unavailable.
func getDeviceID(info os.FileInfo) uint64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return uint64(stat.Dev)
}
