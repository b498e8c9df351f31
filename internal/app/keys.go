package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every key binding the app responds to. Field names mirror
// the action, not the physical key, so rebinding never touches handleKey.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	DrillIn  key.Binding
	Back     key.Binding

	Mark      key.Binding
	ClearMark key.Binding
	Delete    key.Binding

	ViewTree      key.Binding
	ViewLargeFile key.Binding
	ViewArtifacts key.Binding
	ViewFileTypes key.Binding
	CycleStale    key.Binding

	Rescan    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	ConfirmYes key.Binding
	ConfirmNo  key.Binding
}

// DefaultKeyMap mirrors godu's binding choices where the action survives
// unchanged (navigation, quit, help, confirm) and adds the bindings the
// multi-selection and drill-down model introduces.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		DrillIn:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drill in")),
		Back:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "back")),

		Mark:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		ClearMark: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear marks")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),

		ViewTree:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "tree")),
		ViewLargeFile: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "large files")),
		ViewArtifacts: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "artifacts")),
		ViewFileTypes: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "file types")),
		CycleStale:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle staleness")),

		Rescan:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),

		ConfirmYes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		ConfirmNo:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "no")),
	}
}
