package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.callScanCancel()
		return a, tea.Quit
	}

	switch a.mode {
	case ModeScanning, ModeFinalizing:
		if key.Matches(msg, a.keys.Quit) {
			a.callScanCancel()
			return a, tea.Quit
		}
		return a, nil

	case ModeHelp:
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" {
			a.mode = ModeBrowsing
			return a, tea.ClearScreen
		}
		return a, nil

	case ModeConfirmDelete:
		if key.Matches(msg, a.keys.ConfirmYes) {
			return a, a.confirmSingleDelete()
		}
		if key.Matches(msg, a.keys.ConfirmNo) {
			a.cancelDelete()
			return a, tea.ClearScreen
		}
		return a, nil

	case ModeConfirmMultiDelete:
		if key.Matches(msg, a.keys.ConfirmYes) {
			return a, a.confirmMultiDelete()
		}
		if key.Matches(msg, a.keys.ConfirmNo) {
			a.cancelDelete()
			return a, tea.ClearScreen
		}
		return a, nil

	case ModeMultiDeleting:
		// Deletion workers aren't cancellable; only a forced quit (handled
		// above) interrupts a batch in flight.
		return a, nil

	case ModeBrowsing:
		return a.handleBrowsingKey(msg)
	}

	return a, nil
}

func (a *App) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, tea.ClearScreen

	case key.Matches(msg, a.keys.Up):
		a.clearStatus()
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.clearStatus()
		a.moveCursor(1)
	case key.Matches(msg, a.keys.PageUp):
		a.clearStatus()
		a.moveCursor(-a.pageSize())
	case key.Matches(msg, a.keys.PageDown):
		a.clearStatus()
		a.moveCursor(a.pageSize())
	case key.Matches(msg, a.keys.Top):
		a.clearStatus()
		a.moveCursorTo(0)
	case key.Matches(msg, a.keys.Bottom):
		a.clearStatus()
		a.moveCursorTo(a.viewItemCount(a.viewKind) - 1)

	case key.Matches(msg, a.keys.Expand):
		if a.viewKind == ViewTree {
			a.expandSelected()
		}
	case key.Matches(msg, a.keys.Collapse):
		if a.viewKind == ViewTree {
			a.collapseSelected()
		}
	case key.Matches(msg, a.keys.DrillIn):
		if a.viewKind == ViewTree {
			a.drillIn()
		}
	case key.Matches(msg, a.keys.Back):
		if a.viewKind == ViewTree {
			a.goBack()
		}

	case key.Matches(msg, a.keys.ViewTree):
		a.switchView(ViewTree)
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.ViewLargeFile):
		a.switchView(ViewLargeFiles)
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.ViewArtifacts):
		a.switchView(ViewArtifacts)
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.ViewFileTypes):
		a.switchView(ViewFileTypes)
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.CycleStale):
		if a.viewKind == ViewArtifacts {
			a.views.CycleStaleThreshold(time.Now())
		}

	case key.Matches(msg, a.keys.Mark):
		a.toggleMark()
	case key.Matches(msg, a.keys.ClearMark):
		a.clearMarks()
	case key.Matches(msg, a.keys.Delete):
		a.requestDelete()
		if a.mode != ModeBrowsing {
			return a, tea.ClearScreen
		}

	case key.Matches(msg, a.keys.Rescan):
		a.clearMarks()
		a.history = nil
		a.mode = ModeScanning
		return a, tea.Batch(tea.ClearScreen, a.startScan())
	}

	return a, nil
}
