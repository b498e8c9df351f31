package app

import (
	"strings"

	"github.com/sadopc/dux/internal/tree"
	"github.com/sadopc/dux/internal/ui/components"
)

// View renders the current frame. It satisfies tea.Model alongside Init
// and Update.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}

	switch a.mode {
	case ModeScanning, ModeFinalizing:
		return components.RenderScanProgress(a.theme, a.scanCounters, a.mode == ModeFinalizing, a.width, a.height)
	case ModeHelp:
		return components.RenderHelp(a.theme, a.width, a.height)
	case ModeConfirmDelete:
		return a.renderBrowsing() + "\n" + components.RenderConfirmDialog(a.theme, a.confirmItems(), a.width, a.height)
	case ModeConfirmMultiDelete:
		return a.renderBrowsing() + "\n" + components.RenderConfirmDialog(a.theme, a.confirmItems(), a.width, a.height)
	case ModeMultiDeleting:
		return a.renderBrowsing() + "\n" + components.RenderMultiDeleteProgress(a.theme, a.MultiDeleteStatus(), a.width, a.height)
	default:
		return a.renderBrowsing()
	}
}

func (a *App) confirmItems() []components.ConfirmItem {
	if a.pendingSingle != nil {
		n, ok := a.tree.Get(a.pendingSingle.id)
		isDir := ok && n.Kind.IsDirectory()
		return []components.ConfirmItem{{
			Name:  a.pendingSingle.path,
			Path:  a.pendingSingle.path,
			Size:  a.pendingSingle.size,
			IsDir: isDir,
		}}
	}
	items := make([]components.ConfirmItem, 0, len(a.pendingBatch))
	for _, c := range a.pendingBatch {
		n, ok := a.tree.Get(c.id)
		isDir := ok && n.Kind.IsDirectory()
		items = append(items, components.ConfirmItem{Name: c.path, Path: c.path, Size: c.size, IsDir: isDir})
	}
	return items
}

func (a *App) renderBrowsing() string {
	if a.tree == nil {
		return ""
	}

	header := components.RenderHeader(a.theme, a.rootPath, a.tree.TotalSize(), a.tree.TotalFiles(), a.fromCache, a.width)
	breadcrumb := components.RenderBreadcrumb(a.theme, a.breadcrumbSegments(), a.width)
	tabs := components.RenderTabBar(a.theme, int(a.viewKind), a.views.StaleThreshold.Label(), a.width)

	var content string
	switch a.viewKind {
	case ViewTree:
		content = a.renderTreeView()
	case ViewLargeFiles:
		c := a.cursor(ViewLargeFiles)
		content = components.RenderLargeFiles(a.theme, a.views.LargeFiles, c.selected, c.offset, a.layout)
	case ViewArtifacts:
		c := a.cursor(ViewArtifacts)
		content = components.RenderArtifacts(a.theme, a.views.Artifacts, a.views.StaleThreshold.Label(), c.selected, c.offset, a.layout)
	case ViewFileTypes:
		content = components.RenderFileTypes(a.theme, a.views.FileTypes, a.layout)
	}

	status := components.RenderStatusBar(a.theme, components.StatusInfo{
		ItemCount:   a.viewItemCount(a.viewKind),
		MarkedCount: a.selection.Len(),
		MarkedSize:  a.markedSize(),
		ErrorMsg:    a.errorMessage(),
	}, a.width)

	return strings.Join([]string{header, breadcrumb, tabs, content, status}, "\n")
}

func (a *App) renderTreeView() string {
	c := a.cursor(ViewTree)
	tv := components.TreeView{
		Theme:    a.theme,
		Layout:   a.layout,
		Tree:     a.tree,
		ViewRoot: a.viewRoot,
		Visible:  a.tree.VisibleNodes(a.viewRoot),
		Cursor:   c.selected,
		Offset:   c.offset,
		Selected: a.selectionSet(),
	}
	return tv.Render()
}

func (a *App) selectionSet() map[tree.NodeId]bool {
	out := make(map[tree.NodeId]bool, a.selection.Len())
	for _, id := range a.selection.IDs() {
		out[id] = true
	}
	return out
}

func (a *App) markedSize() int64 {
	var total int64
	for _, id := range a.selection.IDs() {
		if n, ok := a.tree.Get(id); ok {
			total += n.Size
		}
	}
	return total
}

func (a *App) errorMessage() string {
	if a.statusIsError {
		return a.statusMsg
	}
	return ""
}

func (a *App) breadcrumbSegments() []string {
	path := a.tree.PathTo(a.viewRoot)
	segments := make([]string, 0, len(path))
	for i, id := range path {
		n, ok := a.tree.Get(id)
		if !ok {
			continue
		}
		if i == 0 {
			segments = append(segments, "/")
			continue
		}
		segments = append(segments, n.Name)
	}
	return segments
}
