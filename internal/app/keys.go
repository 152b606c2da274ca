// internal/app/keys.go
package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the screen key bindings.
type KeyMap struct {
	PlayPause   key.Binding
	Rewind      key.Binding
	FastForward key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	Jump        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/stop"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "rewind"),
		),
		FastForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "fast forward"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "seek back"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "seek forward"),
		),
		Jump: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "jump to 0%-90%"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Rewind, k.FastForward, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Rewind, k.FastForward},
		{k.SeekBack, k.SeekForward, k.Jump},
		{k.Help, k.Quit},
	}
}
