package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the calculator's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Submit      key.Binding
	Cancel      key.Binding
	Clear       key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "reset ans")),
		HistoryPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		HistoryNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.HistoryPrev, k.Help, k.Quit}
}

// FullHelp returns the bindings of the expanded help, by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.Clear},
		{k.HistoryPrev, k.HistoryNext},
		{k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}
