package tree

import "testing"

func buildSample() (*Tree, map[string]NodeId) {
	t0 := New("/root")
	ids := map[string]NodeId{"root": NodeRoot}
	sub := t0.Add("sub", KindDirectory, "/root/sub", NodeRoot)
	ids["sub"] = sub
	a := t0.Add("a.txt", KindFile, "/root/a.txt", NodeRoot)
	ids["a"] = a
	b := t0.Add("b.txt", KindFile, "/root/sub/b.txt", sub)
	ids["b"] = b
	c := t0.Add("c.txt", KindFile, "/root/sub/c.txt", sub)
	ids["c"] = c
	t0.SetSize(a, 100)
	t0.SetSize(b, 200)
	t0.SetSize(c, 50)
	return t0, ids
}

func TestAggregateSizes(t *testing.T) {
	tr, ids := buildSample()
	tr.AggregateSizes()

	if got := tr.TotalSize(); got != 350 {
		t.Fatalf("root size = %d, want 350", got)
	}
	if got := tr.TotalFiles(); got != 3 {
		t.Fatalf("root files = %d, want 3", got)
	}
	sub, _ := tr.Get(ids["sub"])
	if sub.Size != 250 {
		t.Fatalf("sub size = %d, want 250", sub.Size)
	}
}

func TestSortBySizeDescending(t *testing.T) {
	tr, ids := buildSample()
	tr.AggregateSizes()
	tr.SortBySize()

	root, _ := tr.Get(NodeRoot)
	if root.Children[0] != ids["sub"] {
		t.Fatalf("expected sub (250) first, got %v", root.Children)
	}
}

func TestRemoveTombstonesAndAdjustsAncestors(t *testing.T) {
	tr, ids := buildSample()
	tr.AggregateSizes()

	freed := tr.Remove(ids["b"])
	if freed != 200 {
		t.Fatalf("freed = %d, want 200", freed)
	}

	if _, ok := tr.Get(ids["b"]); ok {
		t.Fatalf("removed node should not be reachable via Get")
	}

	sub, _ := tr.Get(ids["sub"])
	if sub.Size != 50 {
		t.Fatalf("sub size after remove = %d, want 50", sub.Size)
	}
	if tr.TotalSize() != 150 {
		t.Fatalf("root size after remove = %d, want 150", tr.TotalSize())
	}

	count := 0
	for range tr.Iter {
		count++
	}
	if count != tr.LiveCount() {
		t.Fatalf("Iter visited %d, LiveCount=%d", count, tr.LiveCount())
	}
	for n := range tr.Iter {
		if n.Name == "b.txt" {
			t.Fatalf("Iter must skip tombstoned node")
		}
	}
}

func TestRemoveSubtreeTombstonesDescendants(t *testing.T) {
	tr, ids := buildSample()
	tr.AggregateSizes()

	tr.Remove(ids["sub"])

	if _, ok := tr.Get(ids["b"]); ok {
		t.Fatalf("child of removed directory should also be gone")
	}
	if _, ok := tr.Get(ids["c"]); ok {
		t.Fatalf("child of removed directory should also be gone")
	}
	if tr.TotalSize() != 100 {
		t.Fatalf("root size after subtree remove = %d, want 100", tr.TotalSize())
	}
}

func TestRebuildPathsRoundTrip(t *testing.T) {
	tr, ids := buildSample()

	// Simulate deserialization: wipe derived path fields.
	for i := range tr.nodes {
		if i == 0 {
			continue
		}
		tr.nodes[i].Path = ""
	}
	tr.byPath = map[string]NodeId{}
	tr.RebuildPaths()

	b, ok := tr.Get(ids["b"])
	if !ok {
		t.Fatalf("b should still be live")
	}
	if b.Path != "/root/sub/b.txt" {
		t.Fatalf("rebuilt path = %q, want /root/sub/b.txt", b.Path)
	}
	if id, ok := tr.FindByPath("/root/sub/b.txt"); !ok || id != ids["b"] {
		t.Fatalf("FindByPath after rebuild = %v, %v", id, ok)
	}
}

func TestPathTo(t *testing.T) {
	tr, ids := buildSample()
	path := tr.PathTo(ids["b"])
	want := []NodeId{NodeRoot, ids["sub"], ids["b"]}
	if len(path) != len(want) {
		t.Fatalf("PathTo length = %d, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("PathTo[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestVisibleNodesRespectsExpansion(t *testing.T) {
	tr, ids := buildSample()
	tr.SetExpanded(NodeRoot, true)
	tr.SetExpanded(ids["sub"], false)

	visible := tr.VisibleNodes(NodeRoot)
	for _, id := range visible {
		if id == ids["b"] || id == ids["c"] {
			t.Fatalf("collapsed directory's children should not be visible")
		}
	}

	tr.ToggleExpanded(ids["sub"])
	visible = tr.VisibleNodes(NodeRoot)
	found := false
	for _, id := range visible {
		if id == ids["b"] {
			found = true
		}
	}
	if !found {
		t.Fatalf("expanded directory's children should be visible")
	}
}
