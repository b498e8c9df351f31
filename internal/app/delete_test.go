package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeletePathRemovesFileWithinRoot(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "sub", "file.txt")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("xxxx"), 0o644); err != nil {
		t.Fatal(err)
	}

	freed, err := deletePath(target, root)
	if err != nil {
		t.Fatalf("deletePath: %v", err)
	}
	if freed <= 0 {
		t.Fatalf("expected a positive freed byte count, got %d", freed)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err = %v", err)
	}
}

func TestDeletePathRemovesDirectoryRecursively(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sub")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "f.txt"), []byte("xxxx"), 0o644); err != nil {
		t.Fatal(err)
	}

	freed, err := deletePath(dir, root)
	if err != nil {
		t.Fatalf("deletePath: %v", err)
	}
	if freed <= 0 {
		t.Fatalf("expected a positive freed byte count summed across the subtree, got %d", freed)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected directory to be removed, stat err = %v", err)
	}
}

func TestDeletePathRefusesEscapeViaSymlink(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	outsideFile := filepath.Join(outside, "secret.txt")
	if err := os.WriteFile(outsideFile, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(root, "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	target := filepath.Join(link, "secret.txt")
	if _, err := deletePath(target, root); err == nil {
		t.Fatal("expected deletePath to refuse a path traversing a symlink outside the root")
	}
	if _, err := os.Stat(outsideFile); err != nil {
		t.Fatalf("outside file should be untouched, stat err = %v", err)
	}
}
