// Package tree implements the arena-backed disk usage tree. Nodes are
// addressed by stable NodeId indices into a single slice; nothing is ever
// compacted, so an id handed out once stays valid for the life of the tree.
package tree

import "time"

// NodeId indexes into a Tree's node arena. The zero value is the root.
type NodeId uint32

// NodeRoot is the id of the tree's root node.
const NodeRoot NodeId = 0

// Index returns the underlying arena index.
func (id NodeId) Index() int { return int(id) }

// Kind classifies what a node represents on disk.
type Kind uint8

const (
	KindDirectory Kind = iota
	KindFile
	KindSymlink
	KindError
)

func (k Kind) IsDirectory() bool { return k == KindDirectory }

// Node is one entry in the arena. Path is derived, not authoritative: it is
// dropped from the cache encoding and rebuilt with Tree.RebuildPaths.
type Node struct {
	Name       string
	Kind       Kind
	Size       int64
	FileCount  int64
	Parent     NodeId
	HasParent  bool
	Children   []NodeId
	Depth      uint16
	IsExpanded bool
	Path       string
	Mtime      time.Time

	tombstoned bool
}

func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

func (n *Node) IsExpandable() bool { return n.Kind.IsDirectory() && n.HasChildren() }

func (n *Node) Live() bool { return !n.tombstoned }
