package app

import "github.com/sadopc/dux/internal/tree"

// Selection is a set of NodeIds marked for a multi-delete. The root can
// never be a member: every mutator treats it as a no-op.
type Selection struct {
	ids map[tree.NodeId]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[tree.NodeId]struct{})}
}

// Toggle adds id if absent, removes it if present. A no-op for the root.
func (s *Selection) Toggle(id tree.NodeId) {
	if id == tree.NodeRoot {
		return
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[tree.NodeId]struct{})
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id tree.NodeId) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in no particular order.
func (s *Selection) IDs() []tree.NodeId {
	out := make([]tree.NodeId, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Dedupe walks each selected id's ancestor chain in t and drops any id that
// has a selected ancestor. The result is the maximal antichain within the
// selection: no surviving id is an ancestor of another, and every original
// member is represented by itself or by one of its ancestors.
func (s *Selection) Dedupe(t *tree.Tree) []tree.NodeId {
	var survivors []tree.NodeId
	for id := range s.ids {
		if !s.hasSelectedAncestor(t, id) {
			survivors = append(survivors, id)
		}
	}
	return survivors
}

func (s *Selection) hasSelectedAncestor(t *tree.Tree, id tree.NodeId) bool {
	n, ok := t.Get(id)
	if !ok {
		return false
	}
	for n.HasParent {
		parent := n.Parent
		if _, selected := s.ids[parent]; selected {
			return true
		}
		pn, ok := t.Get(parent)
		if !ok {
			return false
		}
		n = pn
	}
	return false
}
