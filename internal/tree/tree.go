package tree

import (
	"path/filepath"
	"sort"
	"time"
)

// Tree is the arena holding every node ever added during a scan. Removal
// tombstones nodes instead of compacting the slice, so a NodeId captured
// before a deletion (in a selection set, a cached derived-view row) never
// dangles or gets silently reassigned to a different node.
type Tree struct {
	nodes    []Node
	rootPath string
	byPath   map[string]NodeId
	liveN    int
}

// New creates a tree with only the root node present.
func New(rootPath string) *Tree {
	name := filepath.Base(rootPath)
	if name == "." || name == string(filepath.Separator) {
		name = rootPath
	}
	t := &Tree{
		nodes:    make([]Node, 0, 64),
		rootPath: rootPath,
		byPath:   make(map[string]NodeId),
	}
	t.nodes = append(t.nodes, Node{
		Name:       name,
		Kind:       KindDirectory,
		Path:       rootPath,
		IsExpanded: true,
	})
	t.byPath[rootPath] = NodeRoot
	t.liveN = 1
	return t
}

// RootPath returns the path the tree was rooted at.
func (t *Tree) RootPath() string { return t.rootPath }

// Add inserts a new child of parent and returns its id. Parent must already
// exist; the new node's depth is parent's depth + 1.
func (t *Tree) Add(name string, kind Kind, path string, parent NodeId) NodeId {
	parentDepth := t.nodes[parent.Index()].Depth
	id := NodeId(len(t.nodes))

	fileCount := int64(0)
	if kind == KindFile {
		fileCount = 1
	}

	t.nodes = append(t.nodes, Node{
		Name:      name,
		Kind:      kind,
		Path:      path,
		Parent:    parent,
		HasParent: true,
		Depth:     parentDepth + 1,
		FileCount: fileCount,
	})
	t.nodes[parent.Index()].Children = append(t.nodes[parent.Index()].Children, id)
	if path != "" {
		t.byPath[path] = id
	}
	t.liveN++
	return id
}

// Get returns a pointer to the node, or false if id is out of range or
// the node has been tombstoned by Remove. The
// pointer aliases the arena slot directly; callers must not retain it
// across an Add (which can reallocate the backing slice).
func (t *Tree) Get(id NodeId) (*Node, bool) {
	if int(id) >= len(t.nodes) {
		return nil, false
	}
	n := &t.nodes[id.Index()]
	if n.tombstoned {
		return nil, false
	}
	return n, true
}

// getRaw returns the node regardless of tombstone state, for internal
// traversal that must still walk through removed subtrees structurally.
func (t *Tree) getRaw(id NodeId) *Node {
	if int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id.Index()]
}

// SetSize overwrites a node's own size (pre-aggregation leaf size).
func (t *Tree) SetSize(id NodeId, size int64) {
	if n, ok := t.Get(id); ok {
		n.Size = size
	}
}

// SetMtime records a node's modification time.
func (t *Tree) SetMtime(id NodeId, mt time.Time) {
	if n, ok := t.Get(id); ok {
		n.Mtime = mt
	}
}

// AggregateSizes walks the arena back-to-front, which is always
// children-before-parents because nodes are only ever appended after their
// parent already exists. One linear pass computes every directory's total
// size and file count.
func (t *Tree) AggregateSizes() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if n.tombstoned || !n.Kind.IsDirectory() {
			continue
		}
		var size, files int64
		for _, c := range n.Children {
			child := t.getRaw(c)
			if child == nil || child.tombstoned {
				continue
			}
			size += child.Size
			files += child.FileCount
		}
		n.Size = size
		n.FileCount = files
	}
}

// SortBySize orders every node's children slice by descending size.
func (t *Tree) SortBySize() {
	for i := range t.nodes {
		n := &t.nodes[i]
		if len(n.Children) < 2 {
			continue
		}
		children := n.Children
		sort.SliceStable(children, func(a, b int) bool {
			return t.nodes[children[a].Index()].Size > t.nodes[children[b].Index()].Size
		})
	}
}

// SetExpanded sets a directory's expansion flag. No-op on non-directories.
func (t *Tree) SetExpanded(id NodeId, expanded bool) {
	if n, ok := t.Get(id); ok && n.Kind.IsDirectory() {
		n.IsExpanded = expanded
	}
}

// ToggleExpanded flips a directory's expansion flag.
func (t *Tree) ToggleExpanded(id NodeId) {
	if n, ok := t.Get(id); ok && n.Kind.IsDirectory() {
		n.IsExpanded = !n.IsExpanded
	}
}

// VisibleNodes returns, in display order, every node reachable from root by
// descending only into expanded directories.
func (t *Tree) VisibleNodes(root NodeId) []NodeId {
	var out []NodeId
	t.collectVisible(root, &out)
	return out
}

func (t *Tree) collectVisible(id NodeId, out *[]NodeId) {
	n, ok := t.Get(id)
	if !ok {
		return
	}
	*out = append(*out, id)
	if n.IsExpanded {
		for _, c := range n.Children {
			t.collectVisible(c, out)
		}
	}
}

// PathTo returns the chain of ids from the root down to id, inclusive.
func (t *Tree) PathTo(id NodeId) []NodeId {
	var path []NodeId
	cur, ok := id, true
	for ok {
		path = append(path, cur)
		n := t.getRaw(cur)
		if n == nil || !n.HasParent {
			break
		}
		cur, ok = n.Parent, true
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// saturatingSub clamps a-b at zero. Correct bottom-up aggregation never
// drives an ancestor's Size or FileCount negative, but Remove's ancestor
// walk trusts every node's counters to already reflect its live
// descendants; a clamp here is the last line of defense if that ever
// drifts rather than a visible display going negative.
func saturatingSub(a, b int64) int64 {
	if a < b {
		return 0
	}
	return a - b
}

// Remove tombstones id and every live descendant, detaches id from its
// parent's children slice, and subtracts the removed size from every
// ancestor up to the root. It returns the size freed. Removed NodeIds stay
// valid to look up structurally (PathTo, getRaw) but Get reports them
// absent and Iter skips them, matching "each reference counts only while
// live."
func (t *Tree) Remove(id NodeId) int64 {
	n, ok := t.Get(id)
	if !ok {
		return 0
	}
	freed := n.Size

	var tombstone func(NodeId)
	tombstone = func(nid NodeId) {
		node := t.getRaw(nid)
		if node == nil || node.tombstoned {
			return
		}
		node.tombstoned = true
		t.liveN--
		if node.Path != "" {
			delete(t.byPath, node.Path)
		}
		for _, c := range node.Children {
			tombstone(c)
		}
	}
	tombstone(id)

	if n.HasParent {
		parent := t.getRaw(n.Parent)
		for i, c := range parent.Children {
			if c == id {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
		for cur, ok := n.Parent, true; ok; {
			anc := t.getRaw(cur)
			anc.Size = saturatingSub(anc.Size, freed)
			anc.FileCount = saturatingSub(anc.FileCount, n.FileCount)
			if !anc.HasParent {
				ok = false
			} else {
				cur = anc.Parent
			}
		}
	}
	return freed
}

// Iter calls yield for every live node in arena order, stopping early if
// yield returns false. It is a range-over-func iterator so callers can
// `for n := range t.Iter` without allocating a slice of live nodes.
func (t *Tree) Iter(yield func(*Node) bool) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.tombstoned {
			continue
		}
		if !yield(n) {
			return
		}
	}
}

// IterWithID calls yield for every live node in arena order along with its
// NodeId, stopping early if yield returns false. Derived views need the id
// alongside the node (to let the app jump to it later); Iter alone doesn't
// expose it since most callers only need the node's fields.
func (t *Tree) IterWithID(yield func(NodeId, *Node) bool) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.tombstoned {
			continue
		}
		if !yield(NodeId(i), n) {
			return
		}
	}
}

// FindByPath looks up a live node by its absolute path.
func (t *Tree) FindByPath(path string) (NodeId, bool) {
	id, ok := t.byPath[path]
	if !ok {
		return 0, false
	}
	if n := t.getRaw(id); n == nil || n.tombstoned {
		return 0, false
	}
	return id, true
}

// RebuildPaths recomputes every live node's Path from its parent chain.
// Paths are not part of the cache encoding, so this must run once after a
// tree is deserialized.
func (t *Tree) RebuildPaths() {
	t.byPath = make(map[string]NodeId, len(t.nodes))
	root := t.getRaw(NodeRoot)
	root.Path = t.rootPath
	t.byPath[t.rootPath] = NodeRoot

	var walk func(NodeId)
	walk = func(id NodeId) {
		n := t.getRaw(id)
		if n == nil || n.tombstoned {
			return
		}
		for _, c := range n.Children {
			child := t.getRaw(c)
			if child == nil || child.tombstoned {
				continue
			}
			child.Path = filepath.Join(n.Path, child.Name)
			t.byPath[child.Path] = c
			walk(c)
		}
	}
	walk(NodeRoot)
}

// TotalSize returns the root's aggregated size.
func (t *Tree) TotalSize() int64 {
	return t.nodes[NodeRoot].Size
}

// TotalFiles returns the root's aggregated file count.
func (t *Tree) TotalFiles() int64 {
	return t.nodes[NodeRoot].FileCount
}

// LiveCount returns the number of non-tombstoned nodes.
func (t *Tree) LiveCount() int { return t.liveN }

// Len returns the total arena size, including tombstoned nodes.
func (t *Tree) Len() int { return len(t.nodes) }
