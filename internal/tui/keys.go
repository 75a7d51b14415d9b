package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding

	Study  key.Binding
	Play   key.Binding
	Idle   key.Binding
	Pause  key.Binding
	Stop   key.Binding
	Reset  key.Binding
	Quest  key.Binding
	Manual key.Binding

	Catalog key.Binding

	PrevMonth key.Binding
	NextMonth key.Binding
	ThisMonth key.Binding

	Rename key.Binding
	Avatar key.Binding
	Accept key.Binding

	Confirm key.Binding
	Dismiss key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Study: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "study timer"),
		),
		Play: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "play timer"),
		),
		Idle: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "idle timer"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "discard session"),
		),
		Quest: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gate progress"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "add time"),
		),
		Catalog: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "catalog"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next month"),
		),
		ThisMonth: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this month"),
		),
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "rename"),
		),
		Avatar: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "picture"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "ok"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "later"),
		),
	}
}
