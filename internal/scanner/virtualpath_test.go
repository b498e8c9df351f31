package scanner

import "testing"

func TestIsVirtualOrSlowPathFiltersKnownPatterns(t *testing.T) {
	cases := []struct {
		path, root string
		want       bool
	}{
		{"/proc/1234", "/home/user", true},
		{"/home/user/project", "/home/user", false},
		{"/Volumes/External", "/home/user", true},
		{"/private/var/db/dyld", "/home/user", true},
	}
	for _, c := range cases {
		if got := isVirtualOrSlowPath(c.path, c.root); got != c.want {
			t.Errorf("isVirtualOrSlowPath(%q, %q) = %v, want %v", c.path, c.root, got, c.want)
		}
	}
}

func TestIsVirtualOrSlowPathAllowsExplicitRoot(t *testing.T) {
	if isVirtualOrSlowPath("/proc/self", "/proc") {
		t.Fatal("a path under a deliberately-chosen virtual root should not be filtered")
	}
	if isVirtualOrSlowPath("/proc", "/proc") {
		t.Fatal("the root itself is never filtered")
	}
}
