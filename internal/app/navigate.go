package app

import "github.com/sadopc/dux/internal/tree"

// moveCursor shifts the active view's selection by delta, clamps it to the
// item count, and re-applies the scroll-visibility invariant.
func (a *App) moveCursor(delta int) {
	c := a.cursor(a.viewKind)
	c.selected += delta
	c.clamp(a.viewItemCount(a.viewKind))
	c.ensureVisible(a.visibleHeight())
}

func (a *App) moveCursorTo(idx int) {
	c := a.cursor(a.viewKind)
	c.selected = idx
	c.clamp(a.viewItemCount(a.viewKind))
	c.ensureVisible(a.visibleHeight())
}

func (a *App) pageSize() int {
	h := a.visibleHeight() - 1
	if h < 1 {
		return 1
	}
	return h
}

// selectedNode returns the NodeId under the cursor in the tree view, if any.
func (a *App) selectedNode() (tree.NodeId, bool) {
	if a.tree == nil {
		return 0, false
	}
	visible := a.tree.VisibleNodes(a.viewRoot)
	c := a.cursor(ViewTree)
	if c.selected < 0 || c.selected >= len(visible) {
		return 0, false
	}
	return visible[c.selected], true
}

func (a *App) expandSelected() {
	id, ok := a.selectedNode()
	if !ok {
		return
	}
	n, ok := a.tree.Get(id)
	if !ok || !n.Kind.IsDirectory() {
		return
	}
	if !n.IsExpanded {
		a.tree.SetExpanded(id, true)
		return
	}
	a.drillIn()
}

func (a *App) collapseSelected() {
	id, ok := a.selectedNode()
	if !ok {
		return
	}
	n, ok := a.tree.Get(id)
	if !ok {
		return
	}
	if n.Kind.IsDirectory() && n.IsExpanded {
		a.tree.SetExpanded(id, false)
		return
	}
	if n.HasParent {
		a.tree.SetExpanded(n.Parent, false)
		a.jumpTo(n.Parent)
	}
}

// drillIn makes the selected directory the view root, pushing the current
// root onto the history stack so Back can return to it.
func (a *App) drillIn() {
	id, ok := a.selectedNode()
	if !ok {
		return
	}
	n, ok := a.tree.Get(id)
	if !ok || !n.Kind.IsDirectory() || !n.HasChildren() {
		return
	}
	a.history = append(a.history, a.viewRoot)
	a.viewRoot = id
	c := a.cursor(ViewTree)
	*c = cursorPos{}
}

func (a *App) goBack() {
	if len(a.history) == 0 {
		return
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.viewRoot = prev
	c := a.cursor(ViewTree)
	*c = cursorPos{}
}

// jumpTo points the tree view's cursor at id if it's currently visible.
func (a *App) jumpTo(id tree.NodeId) {
	visible := a.tree.VisibleNodes(a.viewRoot)
	for i, v := range visible {
		if v == id {
			a.moveCursorTo(i)
			return
		}
	}
}

func (a *App) switchView(kind ViewKind) {
	a.viewKind = kind
	a.clearStatus()
}
