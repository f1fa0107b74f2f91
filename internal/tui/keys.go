package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings shared by both scenes
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Calculate key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Calculate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calculate"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "edit input"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func renderHelp(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += HelpDescStyle.Render("  •  ")
		}
		h := b.Help()
		out += HelpKeyStyle.Render(h.Key) + " " + HelpDescStyle.Render(h.Desc)
	}
	return out
}
