package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Center     key.Binding
	ToggleView key.Binding

	// Actions
	Open     key.Binding
	Withdraw key.Binding
	Finish   key.Binding
	CopyLink key.Binding
	CopyID   key.Binding
	Refresh  key.Binding

	// Prompts
	Submit  key.Binding
	Cancel  key.Binding
	Confirm key.Binding
	Decline key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "pan left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "pan right"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Center: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "center chart"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "chart/attachments"),
		),

		// Actions
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("Enter", "open attachment"),
		),
		Withdraw: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "withdraw"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "confirm receipt"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),

		// Prompts
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Withdraw, k.Finish, k.Open, k.CopyLink, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ToggleView, k.Open},
		{k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.Center},
		{k.Withdraw, k.Finish, k.Refresh},
		{k.CopyLink, k.CopyID, k.Help, k.Quit},
	}
}

// promptHelp is shown under the password prompt.
type promptHelp struct {
	k KeyMap
}

func (p promptHelp) ShortHelp() []key.Binding {
	return []key.Binding{p.k.Submit, p.k.Cancel, p.k.ForceQuit}
}

func (p promptHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp()}
}
