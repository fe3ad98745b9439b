package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the game's key bindings
type KeyMap struct {
	Start   key.Binding
	Restart key.Binding
	Quit    key.Binding
	Hand    key.Binding
	Lower   key.Binding
}

// DefaultKeyMap returns the default bindings. Hand keys are disabled when
// gestures come from a detector.
func DefaultKeyMap(keyboardHands bool) KeyMap {
	km := KeyMap{
		Start: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Hand: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "show fingers"),
		),
		Lower: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "lower hand"),
		),
	}
	km.Hand.SetEnabled(keyboardHands)
	km.Lower.SetEnabled(keyboardHands)
	return km
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Restart, k.Hand, k.Lower, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Restart, k.Quit}, {k.Hand, k.Lower}}
}
