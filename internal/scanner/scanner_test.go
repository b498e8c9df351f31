package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/dux/internal/tree"
)

func drainToCompletion(t *testing.T, messages <-chan Message, results <-chan Result) Result {
	t.Helper()
	for range messages {
		// drained; the scan's Completed/Cancelled ordering is exercised by
		// the message-sequence test below.
	}
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for scan result")
		return Result{}
	}
}

func TestScanBuildsAggregatedTree(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.txt"), 100)
	sub := filepath.Join(root, "b")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "c.txt"), 200)
	mustWrite(t, filepath.Join(sub, "d.txt"), 300)

	s := New(DefaultConfig())
	messages, results := s.Scan(context.Background(), root)
	res := drainToCompletion(t, messages, results)
	if res.Err != nil {
		t.Fatalf("scan error: %v", res.Err)
	}

	tr := res.Tree
	if tr.TotalFiles() != 3 {
		t.Fatalf("total files = %d, want 3", tr.TotalFiles())
	}
	if tr.TotalSize() <= 0 {
		t.Fatalf("total size should be positive, got %d", tr.TotalSize())
	}

	rootNode, ok := tr.Get(tree.NodeRoot)
	if !ok {
		t.Fatal("root node missing")
	}
	if len(rootNode.Children) != 2 {
		t.Fatalf("root should have 2 children, got %d", len(rootNode.Children))
	}
	// b/ (500B of file content) should sort ahead of a.txt (100B).
	first, _ := tr.Get(rootNode.Children[0])
	if first.Name != "b" {
		t.Fatalf("expected b first by aggregate size, got %q", first.Name)
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	s := New(DefaultConfig())
	messages, results := s.Scan(context.Background(), root)
	res := drainToCompletion(t, messages, results)
	if res.Err != nil {
		t.Fatalf("scan error: %v", res.Err)
	}
	if res.Tree.TotalSize() != 0 || res.Tree.TotalFiles() != 0 {
		t.Fatalf("empty dir scan should have zero size/files, got size=%d files=%d",
			res.Tree.TotalSize(), res.Tree.TotalFiles())
	}
	if res.Tree.LiveCount() != 1 {
		t.Fatalf("empty dir scan should have exactly the root node, got %d live", res.Tree.LiveCount())
	}
}

func TestScanCancellationReturnsPartialTreeWithoutAggregation(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.txt"), 10)

	s := New(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel before the walk even starts

	messages, results := s.Scan(ctx, root)
	var sawCancelled bool
	for m := range messages {
		if m.Kind == MsgCancelled {
			sawCancelled = true
		}
		if m.Kind == MsgCompleted {
			t.Fatal("cancelled scan must not emit Completed")
		}
	}
	res := <-results
	if !sawCancelled {
		t.Fatal("expected a Cancelled message")
	}
	if res.Tree == nil {
		t.Fatal("cancelled scan should still return a partial tree")
	}
}

func TestScanMessageSequenceHasExactlyOneFinalizingBeforeCompleted(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.txt"), 10)

	s := New(DefaultConfig())
	messages, results := s.Scan(context.Background(), root)

	finalizingCount := 0
	completed := false
	for m := range messages {
		if m.Kind == MsgFinalizing {
			finalizingCount++
			if completed {
				t.Fatal("Finalizing observed after Completed")
			}
		}
		if m.Kind == MsgCompleted {
			completed = true
		}
	}
	if finalizingCount != 1 {
		t.Fatalf("expected exactly one Finalizing message, got %d", finalizingCount)
	}
	if !completed {
		t.Fatal("expected a Completed message")
	}
	res := <-results
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
}

func mustWrite(t *testing.T, path string, n int) {
	t.Helper()
	data := make([]byte, n)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
