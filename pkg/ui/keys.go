package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings. Screens handle their own keys on top.
type KeyMap struct {
	Quit          key.Binding
	Help          key.Binding
	ToggleSidebar key.Binding
	FocusSidebar  key.Binding
	Back          key.Binding
	Up            key.Binding
	Down          key.Binding
	Top           key.Binding
	Bottom        key.Binding
	Select        key.Binding
	Search        key.Binding
	Bookmark      key.Binding
	Copy          key.Binding
	Refresh       key.Binding
	Export        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		ToggleSidebar: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "sidebar")),
		FocusSidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus sidebar")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:           key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Select:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Bookmark:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Export:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export report")),
	}
}
