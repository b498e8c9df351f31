package tree

import "time"

// NodeSnapshot is the on-the-wire shape of a Node, stable across gob
// encoding. Unlike Node it exposes Tombstoned explicitly, since a tree can
// be saved to cache after interactive deletions during the same session.
type NodeSnapshot struct {
	Name       string
	Kind       Kind
	Size       int64
	FileCount  int64
	Parent     NodeId
	HasParent  bool
	Children   []NodeId
	Depth      uint16
	IsExpanded bool
	Mtime      time.Time
	Tombstoned bool
}

// Snapshot is the full serializable state of a Tree. Paths are
// intentionally absent: they are derived from Name plus the parent chain
// and are rebuilt with RebuildPaths after loading.
type Snapshot struct {
	RootPath string
	Nodes    []NodeSnapshot
}

// Snapshot captures the tree's arena for encoding.
func (t *Tree) Snapshot() Snapshot {
	out := Snapshot{RootPath: t.rootPath, Nodes: make([]NodeSnapshot, len(t.nodes))}
	for i, n := range t.nodes {
		out.Nodes[i] = NodeSnapshot{
			Name:       n.Name,
			Kind:       n.Kind,
			Size:       n.Size,
			FileCount:  n.FileCount,
			Parent:     n.Parent,
			HasParent:  n.HasParent,
			Children:   n.Children,
			Depth:      n.Depth,
			IsExpanded: n.IsExpanded,
			Mtime:      n.Mtime,
			Tombstoned: n.tombstoned,
		}
	}
	return out
}

// FromSnapshot rebuilds a Tree from a decoded Snapshot and restores paths.
func FromSnapshot(s Snapshot) *Tree {
	t := &Tree{
		nodes:    make([]Node, len(s.Nodes)),
		rootPath: s.RootPath,
		byPath:   make(map[string]NodeId, len(s.Nodes)),
	}
	for i, n := range s.Nodes {
		t.nodes[i] = Node{
			Name:       n.Name,
			Kind:       n.Kind,
			Size:       n.Size,
			FileCount:  n.FileCount,
			Parent:     n.Parent,
			HasParent:  n.HasParent,
			Children:   n.Children,
			Depth:      n.Depth,
			IsExpanded: n.IsExpanded,
			Mtime:      n.Mtime,
			tombstoned: n.Tombstoned,
		}
		if !n.Tombstoned {
			t.liveN++
		}
	}
	t.RebuildPaths()
	return t
}
