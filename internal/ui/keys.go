package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Find   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Clear  key.Binding
	Reload key.Binding
	Quit   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Abort  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Find:   key.NewBinding(key.WithKeys("/", "ctrl+f"), key.WithHelp("/", "find")),
		Next:   key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "next")),
		Prev:   key.NewBinding(key.WithKeys("N", "ctrl+p"), key.WithHelp("N", "prev")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
		Abort:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Find, k.Next, k.Prev, k.Clear, k.Reload, k.Quit}
}
