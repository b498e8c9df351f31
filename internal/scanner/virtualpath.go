package scanner

import "strings"

// slowPatterns names filesystem locations that are either virtual, very
// slow to enumerate, or prone to permission errors. A path containing one
// of these is skipped unless the scan was deliberately rooted inside it.
var slowPatterns = []string{
	"/Volumes/",
	"/.Spotlight-V100",
	"/.fseventsd",
	"/.DocumentRevisions-V100",
	"/System/Volumes/Data/.Spotlight-V100",
	"CoreSimulator/Volumes",
	"/.MobileBackups",
	".timemachine",
	"/dev/",
	"/proc/",
	"/sys/",
	"/private/var/folders",
	"/private/var/db/dyld",
	"/private/var/db/uuidtext",
}

// isVirtualOrSlowPath reports whether path should be skipped: it matches a
// known slow/virtual pattern, and the scan root itself doesn't contain
// that pattern (so a scan deliberately started inside /proc, e.g. at
// /proc/1, still works; a root of exactly /proc lacks the "/proc/" pattern,
// so its children are filtered).
func isVirtualOrSlowPath(path, rootPath string) bool {
	if path == rootPath || strings.HasPrefix(rootPath, path) {
		return false
	}
	for _, pattern := range slowPatterns {
		if strings.Contains(path, pattern) && !strings.Contains(rootPath, pattern) {
			return true
		}
	}
	return false
}
