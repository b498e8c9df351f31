//go:build windows

package scanner

import "os"

// getDiskUsage falls back to apparent size; Windows doesn't expose block
// counts through os.FileInfo.
func getDiskUsage(info os.FileInfo) int64 {
	return info.Size()
}

// getDeviceID is unsupported on Windows; every entry reports the same id
// so the same-filesystem check never filters anything out.
func getDeviceID(info os.FileInfo) uint64 {
	return 0
}
