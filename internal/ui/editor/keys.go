package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard bindings for the editor.
type KeyMap struct {
	// File actions
	Save key.Binding
	Quit key.Binding

	// Cursor movement
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	// Editing
	Newline       key.Binding
	Indent        key.Binding
	Backspace     key.Binding
	DeleteForward key.Binding
	DeleteLine    key.Binding

	// Clipboard
	CopyLine key.Binding
	CutLine  key.Binding
	Paste    key.Binding
}

// DefaultKeyMap returns the default editor key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("ctrl+left", "alt+left", "alt+b"),
			key.WithHelp("ctrl+←", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("ctrl+right", "alt+right", "alt+f"),
			key.WithHelp("ctrl+→", "word right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),

		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete back"),
		),
		DeleteForward: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "delete line"),
		),

		CopyLine: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy line"),
		),
		CutLine: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cut line"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.DeleteLine}
}
