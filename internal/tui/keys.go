package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the panel.
type KeyMap struct {
	TogglePanel   key.Binding
	Up            key.Binding
	Down          key.Binding
	Confirm       key.Binding
	Back          key.Binding
	ViewList      key.Binding
	ViewGroups    key.Binding
	ViewBookmarks key.Binding
	Detail        key.Binding
	Pin           key.Binding
	Bookmark      key.Binding
	CloseTab      key.Binding
	Yank          key.Binding
	TogglePinned  key.Binding
	MoveUp        key.Binding
	MoveDown      key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TogglePanel: key.NewBinding(
			// ctrl+space arrives as ctrl+@ on most terminals.
			key.WithKeys("ctrl+@"),
			key.WithHelp("ctrl+space", "toggle panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		ViewList: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "list view"),
		),
		ViewGroups: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "group view"),
		),
		ViewBookmarks: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "bookmark view"),
		),
		Detail: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "details"),
		),
		Pin: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "pin/unpin"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bookmark"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		Yank: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "yank URL"),
		),
		TogglePinned: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "fold pinned"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑", "reorder up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+↓", "reorder down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
