package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/dux/internal/tree"
	"github.com/sadopc/dux/internal/ui/components"
)

// toggleMark flips the selection membership of the node under the tree
// view's cursor, then advances the cursor so repeated presses of the mark
// key sweep down a listing.
func (a *App) toggleMark() {
	if a.viewKind != ViewTree {
		return
	}
	id, ok := a.selectedNode()
	if !ok {
		return
	}
	a.selection.Toggle(id)
	a.moveCursor(1)
}

func (a *App) clearMarks() {
	a.selection.Clear()
}

// requestDelete decides, from Browsing, whether a delete key press should
// confirm a single item (selection empty) or a batch (selection non-empty).
func (a *App) requestDelete() {
	if a.tree == nil {
		return
	}
	if a.selection.Len() == 0 {
		id, ok := a.selectedNode()
		if !ok || id == tree.NodeRoot {
			return
		}
		n, ok := a.tree.Get(id)
		if !ok {
			return
		}
		a.pendingSingle = &deleteCandidate{id: id, path: n.Path, size: n.Size}
		a.mode = ModeConfirmDelete
		return
	}

	survivors := a.selection.Dedupe(a.tree)
	var batch []deleteCandidate
	for _, id := range survivors {
		n, ok := a.tree.Get(id)
		if !ok {
			continue
		}
		batch = append(batch, deleteCandidate{id: id, path: n.Path, size: n.Size})
	}
	if len(batch) == 0 {
		return
	}
	a.pendingBatch = batch
	a.mode = ModeConfirmMultiDelete
}

func (a *App) cancelDelete() {
	a.pendingSingle = nil
	a.pendingBatch = nil
	a.mode = ModeBrowsing
}

// confirmSingleDelete removes the node from the tree immediately
// (optimistic update) and kicks off the filesystem removal in the
// background; the UI returns to Browsing without waiting for it.
func (a *App) confirmSingleDelete() tea.Cmd {
	c := a.pendingSingle
	a.pendingSingle = nil
	if c == nil {
		a.mode = ModeBrowsing
		return nil
	}
	a.tree.Remove(c.id)
	if a.selection.Contains(c.id) {
		a.selection.Toggle(c.id) // drop it only if it happened to be marked too
	}
	a.refreshViews()
	a.clampCursor(a.viewKind)
	a.mode = ModeBrowsing

	rootPath := a.rootPath
	return func() tea.Msg {
		freed, err := deletePath(c.path, rootPath)
		if err != nil {
			return deleteDoneMsg{id: c.id, err: err}
		}
		if freed == 0 {
			freed = c.size
		}
		return deleteDoneMsg{id: c.id, size: freed}
	}
}

// confirmMultiDelete mutates the tree for every surviving candidate up
// front, then spawns one worker per item and transitions to MultiDeleting
// to watch the shared result channel.
func (a *App) confirmMultiDelete() tea.Cmd {
	batch := a.pendingBatch
	a.pendingBatch = nil
	if len(batch) == 0 {
		a.mode = ModeBrowsing
		return nil
	}

	for _, c := range batch {
		a.tree.Remove(c.id)
	}
	a.selection.Clear()
	a.refreshViews()
	a.clampCursor(a.viewKind)

	results := make(chan deleteResult, len(batch))
	spawnDeleteWorkers(batch, a.rootPath, results)

	a.multiDelete = &multiDeleteState{
		total:   len(batch),
		results: results,
	}
	a.mode = ModeMultiDeleting
	return a.pollMultiDelete()
}

// pollMultiDelete drains whatever results are currently buffered without
// blocking, then either re-schedules itself (still waiting on workers) or
// finalizes the batch and returns to Browsing.
func (a *App) pollMultiDelete() tea.Cmd {
	md := a.multiDelete
	if md == nil {
		return nil
	}

	for {
		select {
		case res := <-md.results:
			md.completed++
			if res.err != nil {
				md.failures = append(md.failures, fmt.Sprintf("%v", res.err))
			} else {
				md.bytesFreed += res.size
				a.stats.BytesFreed += res.size
				a.stats.ItemsDeleted++
			}
		default:
			if md.completed >= md.total {
				a.finishMultiDelete()
				return tea.ClearScreen
			}
			return tea.Tick(tickInterval, func(time.Time) tea.Msg { return multiDeleteTickMsg{} })
		}
		if md.completed >= md.total {
			a.finishMultiDelete()
			return tea.ClearScreen
		}
	}
}

func (a *App) finishMultiDelete() {
	md := a.multiDelete
	a.multiDelete = nil
	a.mode = ModeBrowsing
	if len(md.failures) == 1 {
		a.setError(fmt.Sprintf("1 delete failed: %s", md.failures[0]))
	} else if len(md.failures) > 1 {
		a.setError(fmt.Sprintf("%d deletes failed", len(md.failures)))
	}
}

// MultiDeleteStatus returns the current batch-delete progress, or the zero
// value if no batch is in flight.
func (a *App) MultiDeleteStatus() components.MultiDeleteProgress {
	if a.multiDelete == nil {
		return components.MultiDeleteProgress{}
	}
	return components.MultiDeleteProgress{
		Total:      a.multiDelete.total,
		Completed:  a.multiDelete.completed,
		BytesFreed: a.multiDelete.bytesFreed,
		Failures:   a.multiDelete.failures,
	}
}
