package cmd

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the application. It satisfies key.Map so
// it can be passed directly to bubbles/help.Model for automatic rendering.
type keyMap struct {
	Plots    key.Binding
	Results  key.Binding
	Sweep    key.Binding
	NextView key.Binding
	Focus    key.Binding
	Select   key.Binding
	Move     key.Binding
	Jump     key.Binding
	Cancel   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Plots, k.Results, k.Sweep, k.Focus, k.Move, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view (columns).
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Plots, k.Results, k.Sweep, k.NextView}, // views
		{k.Focus, k.Select, k.Move, k.Jump},       // inspectors
		{k.Cancel, k.Reload, k.Help, k.Quit},
	}
}

// keys is the set of key bindings used across the app.
var keys = keyMap{
	Plots: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "plots"),
	),
	Results: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open results"),
	),
	Sweep: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "new sweep"),
	),
	NextView: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next view"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next chart"),
	),
	Select: key.NewBinding(
		key.WithKeys("[", "]"),
		key.WithHelp("[/]", "select inspector"),
	),
	Move: key.NewBinding(
		key.WithKeys("left", "right"),
		key.WithHelp("←/→", "move inspector"),
	),
	Jump: key.NewBinding(
		key.WithKeys("shift+left", "shift+right"),
		key.WithHelp("shift+←/→", "move 10 cells"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel drag"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
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
