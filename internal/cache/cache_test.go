package cache

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/dux/internal/tree"
)

func buildTree() *tree.Tree {
	t0 := tree.New("/root")
	sub := t0.Add("sub", tree.KindDirectory, "/root/sub", tree.NodeRoot)
	t0.Add("a.txt", tree.KindFile, "/root/a.txt", tree.NodeRoot)
	t0.Add("b.txt", tree.KindFile, "/root/sub/b.txt", sub)
	t0.AggregateSizes()
	return t0
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dux")

	want := buildTree()
	mtime := time.Now().Truncate(time.Second)
	meta := Metadata{
		RootPath:  "/root",
		ScanTime:  mtime,
		RootMtime: mtime,
		TotalSize: want.TotalSize(),
		Config:    ScanConfig{FollowSymlinks: false, SameFilesystem: true},
	}

	if err := Save(path, want, meta); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotMeta, gotTree, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotMeta.RootPath != meta.RootPath {
		t.Fatalf("RootPath = %q, want %q", gotMeta.RootPath, meta.RootPath)
	}
	if gotTree.TotalSize() != want.TotalSize() {
		t.Fatalf("TotalSize = %d, want %d", gotTree.TotalSize(), want.TotalSize())
	}
	if id, ok := gotTree.FindByPath("/root/sub/b.txt"); !ok {
		t.Fatalf("expected /root/sub/b.txt to resolve after reload")
	} else if n, _ := gotTree.Get(id); n.Name != "b.txt" {
		t.Fatalf("resolved node name = %q", n.Name)
	}
}

func TestLoadRejectsCorruptedChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dux")

	if err := Save(path, buildTree(), Metadata{RootPath: "/root"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)/2] ^= 0xFF
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); err != ErrCorrupt {
		t.Fatalf("Load corrupted file: err = %v, want ErrCorrupt", err)
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dux")
	if err := Save(path, buildTree(), Metadata{RootPath: "/root"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Version is the 4 little-endian bytes right after the 4-byte magic.
	// Bump it and recompute the trailing CRC32 so only the version check
	// (not the checksum check) can reject the file.
	raw[len(Magic)] = raw[len(Magic)] + 1
	checksum := crc32.ChecksumIEEE(raw[:len(raw)-4])
	binary.LittleEndian.PutUint32(raw[len(raw)-4:], checksum)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); err != ErrBadVersion {
		t.Fatalf("Load version-mismatched file: err = %v, want ErrBadVersion", err)
	}
}

func TestPathForIsDeterministic(t *testing.T) {
	a := PathFor("/cache", "/home/user/project")
	b := PathFor("/cache", "/home/user/project")
	if a != b {
		t.Fatalf("PathFor not deterministic: %q != %q", a, b)
	}
	c := PathFor("/cache", "/home/user/other")
	if a == c {
		t.Fatalf("PathFor collided for different roots")
	}
}

func TestIsFreshDetectsStaleRoot(t *testing.T) {
	tr := buildTree()
	base := time.Now().Truncate(time.Second)
	meta := Metadata{
		RootPath:  "/root",
		RootMtime: base,
		Config:    ScanConfig{SameFilesystem: true},
	}
	cfg := ScanConfig{SameFilesystem: true}

	fresh := IsFresh(meta, "/root", cfg, tr, func(path string) (time.Time, bool) {
		return base, true
	})
	if !fresh {
		t.Fatalf("expected fresh cache when mtimes match")
	}

	stale := IsFresh(meta, "/root", cfg, tr, func(path string) (time.Time, bool) {
		return base.Add(time.Hour), true
	})
	if stale {
		t.Fatalf("expected stale cache when root mtime changed")
	}
}

func TestIsFreshDetectsConfigChange(t *testing.T) {
	tr := buildTree()
	meta := Metadata{RootPath: "/root", Config: ScanConfig{SameFilesystem: true}}
	fresh := IsFresh(meta, "/root", ScanConfig{SameFilesystem: false}, tr, func(string) (time.Time, bool) {
		return time.Time{}, true
	})
	if fresh {
		t.Fatalf("expected config change to invalidate cache")
	}
}

func TestIsFreshSpotChecksDeepDirectoryMtimeChange(t *testing.T) {
	tr := tree.New("/root")
	sub := tr.Add("sub", tree.KindDirectory, "/root/sub", tree.NodeRoot)
	tr.SetMtime(tree.NodeRoot, time.Unix(1000, 0))
	tr.SetMtime(sub, time.Unix(2000, 0))
	f := tr.Add("f.txt", tree.KindFile, "/root/sub/f.txt", sub)
	tr.SetSize(f, 999999) // only two directories, both well within the spot-check sample

	meta := Metadata{
		RootPath:  "/root",
		RootMtime: time.Unix(1000, 0),
		Config:    ScanConfig{SameFilesystem: true},
	}
	cfg := ScanConfig{SameFilesystem: true}

	fresh := IsFresh(meta, "/root", cfg, tr, func(path string) (time.Time, bool) {
		switch path {
		case "/root":
			return time.Unix(1000, 0), true
		case "/root/sub":
			return time.Unix(2000, 0), true
		default:
			return time.Time{}, false
		}
	})
	if !fresh {
		t.Fatalf("expected fresh cache: root mtime and spot-checked dir mtime both match")
	}

	stale := IsFresh(meta, "/root", cfg, tr, func(path string) (time.Time, bool) {
		switch path {
		case "/root":
			return time.Unix(1000, 0), true
		case "/root/sub":
			return time.Unix(9999, 0), true // grandchild changed, root mtime didn't
		default:
			return time.Time{}, false
		}
	})
	if stale {
		t.Fatalf("spot check should catch a deep directory mtime change the root mtime alone misses")
	}
}
